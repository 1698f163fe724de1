package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

// ConverterEnv names a variable that overrides the rsvg-convert binary.
const ConverterEnv = "FLOWLAYOUT_RSVG"

const installHint = "install librsvg (brew install librsvg, apt install librsvg2-bin) or set " + ConverterEnv

// converter resolves the rsvg-convert binary, honoring ConverterEnv.
func converter() (string, error) {
	name := "rsvg-convert"
	if v := strings.TrimSpace(os.Getenv(ConverterEnv)); v != "" {
		name = v
	}
	return exec.LookPath(name)
}

// Available reports whether SVG conversion can run.
func Available() bool {
	_, err := converter()
	return err == nil
}

// ToPDF converts SVG bytes to a single-page PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. scale multiplies the SVG's pixel size;
// values <= 0 mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := converter()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s output needs rsvg-convert; %s", format, installHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to %s: %s", format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

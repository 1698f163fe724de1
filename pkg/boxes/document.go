package boxes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Document is a box list together with the frame it is laid out in.
type Document struct {
	Width   int         `json:"width" toml:"width" yaml:"width"`
	Padding flow.Insets `json:"padding,omitempty" toml:"padding" yaml:"padding,omitempty"`
	Boxes   []flow.Box  `json:"boxes,omitempty" toml:"boxes,omitempty" yaml:"boxes,omitempty"`
	Labels  []string    `json:"labels,omitempty" toml:"labels,omitempty" yaml:"labels,omitempty"`
}

// Items returns the explicit boxes followed by one box per label, sized with
// DefaultMetrics.
func (d Document) Items() []flow.Box {
	out := append([]flow.Box(nil), d.Boxes...)
	return append(out, FromLabels(d.Labels, DefaultMetrics)...)
}

// Validate checks the frame and every box.
func (d Document) Validate() error {
	if err := errors.ValidateFrame(d.Width, d.Padding); err != nil {
		return err
	}
	return errors.ValidateBoxes(d.Items())
}

// FormatFromPath picks a format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer document format from %q (use .json, .toml, .yaml or .yml)", path)
}

// Marshal encodes d in format f.
func Marshal(d Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes d in format f to w.
func Write(d Document, w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(d)
		if err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// WriteFile writes d to path, choosing the format from the extension.
func WriteFile(d Document, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Read decodes and validates a document in format f.
func Read(r io.Reader, f Format) (Document, error) {
	var (
		d   Document
		err error
	)
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&d)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&d)
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s document", f)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadFile reads the document at path, choosing the format from the extension.
func ReadFile(path string) (Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}

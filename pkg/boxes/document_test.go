package boxes

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

func sampleDocument() Document {
	return Document{
		Width:   320,
		Padding: flow.Insets{Left: 8, Right: 8},
		Boxes: []flow.Box{
			{ID: "a", Width: 40, Height: 20, Margin: flow.Insets{Right: 4}},
			{ID: "b", Width: 60, Height: 20},
		},
		Labels: []string{"go"},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"boxes.json", FormatJSON, false},
		{"boxes.TOML", FormatTOML, false},
		{"dir/boxes.yaml", FormatYAML, false},
		{"boxes.yml", FormatYAML, false},
		{"boxes.txt", "", true},
		{"boxes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc.json", "doc.toml", "doc.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			want := sampleDocument()
			if err := WriteFile(want, path); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if got.Width != want.Width || got.Padding != want.Padding {
				t.Errorf("frame = %d %+v, want %d %+v", got.Width, got.Padding, want.Width, want.Padding)
			}
			if len(got.Boxes) != 2 || got.Boxes[0] != want.Boxes[0] || got.Boxes[1] != want.Boxes[1] {
				t.Errorf("boxes = %+v, want %+v", got.Boxes, want.Boxes)
			}
			if len(got.Labels) != 1 || got.Labels[0] != "go" {
				t.Errorf("labels = %v, want [go]", got.Labels)
			}
		})
	}
}

func TestReadTOML(t *testing.T) {
	src := `
width = 100

[padding]
left = 5

[[boxes]]
id = "x"
width = 30
height = 10

[[boxes]]
id = "y"
width = 20
height = 10
spacer = false

[boxes.margin]
top = 2
`
	d, err := Read(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if d.Width != 100 || d.Padding.Left != 5 {
		t.Errorf("frame = %d %+v", d.Width, d.Padding)
	}
	if len(d.Boxes) != 2 || d.Boxes[1].Margin.Top != 2 {
		t.Errorf("boxes = %+v", d.Boxes)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		code   errors.Code
	}{
		{"bad json", `{"width":`, FormatJSON, errors.ErrCodeInvalidDocument},
		{"unknown json field", `{"width": 10, "colour": "red"}`, FormatJSON, errors.ErrCodeInvalidDocument},
		{"unknown toml key", "width = 10\ncolour = \"red\"\n", FormatTOML, errors.ErrCodeInvalidDocument},
		{"unknown yaml key", "width: 10\ncolour: red\n", FormatYAML, errors.ErrCodeInvalidDocument},
		{"negative width box", `{"width": 10, "boxes": [{"width": -1, "height": 1}]}`, FormatJSON, errors.ErrCodeInvalidBox},
		{"negative frame", "width: -5\n", FormatYAML, errors.ErrCodeInvalidFrame},
		{"unknown format", "", Format("xml"), errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteFileUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := WriteFile(sampleDocument(), path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WriteFile() error = %v, want INVALID_FORMAT", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("WriteFile() created a file for an unknown extension")
	}
}

func TestMarshalJSONIsStable(t *testing.T) {
	a, err := Marshal(sampleDocument(), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Marshal(sampleDocument(), FormatJSON)
	if !bytes.Equal(a, b) {
		t.Error("Marshal() is not deterministic")
	}
}

func TestItems(t *testing.T) {
	items := sampleDocument().Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[2].ID != "go" || items[2].Width != 2*8+2*8 {
		t.Errorf("label box = %+v", items[2])
	}
}

package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

func newTestPreview(t *testing.T, labels ...string) *previewModel {
	t.Helper()
	m, err := newPreviewModel(log.New(io.Discard), labels, 20)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func press(m *previewModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
	return cmd
}

func TestPreviewAddDeleteClear(t *testing.T) {
	m := newTestPreview(t, "go", "flow")
	if len(m.res.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(m.res.Lines))
	}

	press(m, "a", "a")
	if m.list.Count() != 4 {
		t.Errorf("count after add = %d, want 4", m.list.Count())
	}
	if len(m.res.Placements) != 4 {
		t.Errorf("layout not refreshed: %d placements", len(m.res.Placements))
	}

	press(m, "d")
	if m.list.Count() != 3 {
		t.Errorf("count after delete = %d, want 3", m.list.Count())
	}

	press(m, "c")
	if m.list.Count() != 0 || len(m.res.Lines) != 0 {
		t.Errorf("after clear: count = %d, lines = %d", m.list.Count(), len(m.res.Lines))
	}
	if !strings.Contains(m.View(), "(no boxes)") {
		t.Error("empty preview should say so")
	}

	press(m, "d")
	if m.status != "nothing to delete" {
		t.Errorf("status = %q", m.status)
	}
}

func TestPreviewGravityAndMaxLines(t *testing.T) {
	m := newTestPreview(t, "alpha", "beta", "gamma", "delta")

	press(m, "g")
	if m.cfg.Gravity != flow.GravityCenter {
		t.Errorf("gravity = %v, want center", m.cfg.Gravity)
	}
	press(m, "g", "g", "g")
	if m.cfg.Gravity != flow.GravityStart {
		t.Errorf("gravity should wrap to start, got %v", m.cfg.Gravity)
	}

	if len(m.res.Lines) < 2 {
		t.Fatalf("want a wrapped layout, got %d lines", len(m.res.Lines))
	}
	press(m, "+")
	if m.res.ShownLines != 1 {
		t.Errorf("shown = %d, want 1", m.res.ShownLines)
	}
	press(m, "t")
	if m.lastErr != nil {
		t.Fatalf("truncate: %v", m.lastErr)
	}
	if len(m.res.Lines) != 1 {
		t.Errorf("lines after truncate = %d, want 1", len(m.res.Lines))
	}
	press(m, "-", "-")
	if m.cfg.MaxLines != 0 {
		t.Errorf("MaxLines = %d, want 0", m.cfg.MaxLines)
	}
}

func TestPreviewReflow(t *testing.T) {
	// Frame 18: "alpha" and "go" fill a line once compressed.
	m := newTestPreview(t, "alpha", "gamma", "go", "beta")
	before := len(m.res.Lines)

	press(m, "p")
	if m.lastErr != nil {
		t.Fatal(m.lastErr)
	}
	if len(m.res.Lines) > before {
		t.Errorf("compress grew the layout from %d to %d lines", before, len(m.res.Lines))
	}

	press(m, "r", "l")
	if m.lastErr != nil {
		t.Fatal(m.lastErr)
	}
	spacers := 0
	for _, p := range m.res.Placements {
		if p.Spacer {
			spacers++
		}
	}
	if spacers == 0 {
		t.Error("align should insert spacers into wrapped lines")
	}
	if !strings.Contains(renderCanvas(m.res), "·") {
		t.Error("spacers should be drawn")
	}

	press(m, "r")
	for _, b := range m.host.Boxes() {
		if b.Spacer {
			t.Fatal("reset should restore the adapter order")
		}
	}
}

func TestPreviewReload(t *testing.T) {
	m := newTestPreview(t, "a")
	m.Update(loadedMsg{labels: []string{"x", "y", "z"}})
	if m.list.Count() != 3 {
		t.Errorf("count after reload = %d, want 3", m.list.Count())
	}
	if !strings.Contains(m.View(), "y") {
		t.Error("reloaded labels should be drawn")
	}

	m.Update(loadedMsg{err: io.ErrUnexpectedEOF})
	if m.lastErr == nil {
		t.Error("load errors should be shown")
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t)
	if cmd := press(m, "q"); cmd == nil {
		t.Error("q should quit")
	}
}

func TestDocumentLabels(t *testing.T) {
	doc := boxes.Document{
		Boxes: []flow.Box{
			{ID: "logo", Width: 10},
			flow.NewSpacer(4),
			{Width: 5},
		},
		Labels: []string{"go"},
	}
	got := strings.Join(documentLabels(doc), ",")
	if got != "logo,#2,go" {
		t.Errorf("documentLabels = %s", got)
	}
}

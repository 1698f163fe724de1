package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/adapter"
	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/watcher"
)

// Preview styles
var (
	previewBoxStyle    = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("24"))
	previewSpacerStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// sampleLabels seeds the preview when no document is given and feeds "a".
var sampleLabels = []string{
	"go", "layout", "flow", "wrap", "spacer", "compress", "knapsack", "align",
	"gravity", "terminal", "box", "line", "frame", "margin", "padding", "observer",
}

const previewHelp = "a add · d delete · c clear · g gravity · p compress · l align · b both · " +
	"t truncate · r reset · +/- max lines · q quit"

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Preview a layout interactively in the terminal",
		Long: `Preview a layout interactively in the terminal.

Every label (and every box, by its id) becomes a terminal-sized box. Boxes
can be added and removed while the layout updates, and the reflow transforms
can be applied to the current order.

With --watch the document is reloaded whenever it changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if watch && path == "" {
				return fmt.Errorf("--watch requires a document")
			}
			return c.runPreview(cmd.Context(), path, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the document when it changes")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, watch bool) error {
	labels := sampleLabels[:8]
	if path != "" {
		doc, err := boxes.ReadFile(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		labels = documentLabels(doc)
	}

	m, err := newPreviewModel(c.Logger, labels, 80)
	if err != nil {
		return err
	}
	m.path = path

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch {
		w, err := watcher.New(path, func() { p.Send(reloadMsg{}) }, watcher.WithLogger(c.Logger))
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Close()
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.Run(watchCtx)
	}

	_, err = p.Run()
	return err
}

// documentLabels returns one label per document item: labels as they are,
// boxes by id.
func documentLabels(doc boxes.Document) []string {
	out := make([]string, 0, len(doc.Boxes)+len(doc.Labels))
	for i, b := range doc.Boxes {
		if b.Spacer {
			continue
		}
		if b.ID != "" {
			out = append(out, b.ID)
		} else {
			out = append(out, fmt.Sprintf("#%d", i))
		}
	}
	return append(out, doc.Labels...)
}

// =============================================================================
// previewModel - bubbletea model over a ListAdapter and Host
// =============================================================================

type reloadMsg struct{}

type loadedMsg struct {
	labels []string
	err    error
}

type previewModel struct {
	list *adapter.ListAdapter
	host *adapter.Host

	path    string
	width   int
	cfg     flow.Config
	next    int
	res     engine.Result
	status  string
	lastErr error
}

func newPreviewModel(logger *log.Logger, labels []string, width int) (*previewModel, error) {
	list := adapter.NewListAdapter(boxes.FromLabels(labels, boxes.TerminalMetrics)...)
	host := adapter.NewHost(engine.New(flow.Config{}), logger)
	if err := host.Bind(list); err != nil {
		return nil, err
	}
	m := &previewModel{
		list:  list,
		host:  host,
		width: width,
		next:  len(labels),
	}
	m.relayout()
	return m, nil
}

// frameWidth is the terminal width minus the frame border.
func (m *previewModel) frameWidth() int {
	return max(m.width-2, 1)
}

func (m *previewModel) relayout() {
	res, err := m.host.Layout(m.frameWidth(), flow.HeightSpec{})
	if err != nil {
		m.lastErr = err
		return
	}
	m.res = res
}

func (m *previewModel) setConfig() {
	m.cfg = m.cfg.Normalize()
	m.host.SetConfig(m.cfg)
}

// load reads the document again; it runs outside Update.
func (m *previewModel) load() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		doc, err := boxes.ReadFile(path)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{labels: documentLabels(doc)}
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case reloadMsg:
		return m, m.load()
	case loadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.list.Set(boxes.FromLabels(msg.labels, boxes.TerminalMetrics))
		m.status = "reloaded " + m.path
	case tea.KeyMsg:
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	default:
		return m, nil
	}
	m.relayout()
	return m, nil
}

// handleKey applies one key binding and reports whether to quit.
func (m *previewModel) handleKey(key string) bool {
	m.status, m.lastErr = "", nil
	fw := m.frameWidth()

	switch key {
	case "q", "ctrl+c", "esc":
		return true
	case "a":
		label := sampleLabels[m.next%len(sampleLabels)]
		m.next++
		m.list.Add(boxes.TerminalMetrics.LabelBox(label))
		m.status = "added " + label
	case "d":
		if !m.list.RemoveLast() {
			m.status = "nothing to delete"
		}
	case "c":
		m.list.Clear()
		m.status = "cleared"
	case "g":
		m.cfg.Gravity = (m.cfg.Gravity + 1) % (flow.GravityAlign + 1)
		m.setConfig()
		m.status = "gravity " + m.cfg.Gravity.String()
	case "p":
		m.lastErr = m.host.Compress(fw)
		m.status = errors.ModeCompress
	case "l":
		m.lastErr = m.host.Align(fw)
		m.status = errors.ModeAlign
	case "b":
		m.lastErr = m.host.CompressAndAlign(fw)
		m.status = errors.ModeCompressAlign
	case "t":
		m.lastErr = m.host.TruncateToLines(m.res.ShownLines)
		m.status = fmt.Sprintf("truncated to %d line(s)", m.res.ShownLines)
	case "r":
		m.lastErr = m.host.Reset()
		m.status = "reset"
	case "+", "=":
		m.cfg.MaxLines++
		m.setConfig()
	case "-", "_":
		if m.cfg.MaxLines > 0 {
			m.cfg.MaxLines--
			m.setConfig()
		}
	}
	return false
}

func (m *previewModel) View() string {
	var b strings.Builder

	maxLines := "∞"
	if m.cfg.MaxLines > 0 {
		maxLines = fmt.Sprint(m.cfg.MaxLines)
	}
	b.WriteString(StyleTitle.Render("flowlayout preview"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  gravity %s · max lines %s · ", m.cfg.Gravity, maxLines)))
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d boxes, %d/%d lines", m.list.Count(), m.res.ShownLines, len(m.res.Lines))))
	b.WriteString("\n")

	b.WriteString(previewFrameStyle.Width(m.frameWidth()).Render(renderCanvas(m.res)))
	b.WriteString("\n")

	switch {
	case m.lastErr != nil:
		b.WriteString(statusLine(statusError, errors.UserMessage(m.lastErr)))
	case m.status != "":
		b.WriteString(StyleSuccess.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render(previewHelp))
	return b.String()
}

// renderCanvas draws placements as text rows. Boxes are one row high, so
// each placement's top edge is its row.
func renderCanvas(res engine.Result) string {
	if len(res.Placements) == 0 {
		return StyleDim.Render("(no boxes)")
	}

	rows := make([][]flow.Placement, res.MeasuredHeight)
	for _, p := range res.Placements {
		if p.Rect.Top >= 0 && p.Rect.Top < len(rows) {
			rows[p.Rect.Top] = append(rows[p.Rect.Top], p)
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		sort.Slice(row, func(a, b int) bool { return row[a].Rect.Left < row[b].Rect.Left })

		var sb strings.Builder
		cursor := 0
		for _, p := range row {
			if p.Rect.Left > cursor {
				sb.WriteString(strings.Repeat(" ", p.Rect.Left-cursor))
			}
			w := p.Rect.Right - p.Rect.Left
			if p.Spacer {
				sb.WriteString(previewSpacerStyle.Render(strings.Repeat("·", w)))
			} else {
				sb.WriteString(previewBoxStyle.Render(" " + p.ID + " "))
			}
			cursor = max(cursor, p.Rect.Right)
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Status Lines
// =============================================================================

type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
	body  *lipgloss.Style // nil leaves the text unstyled
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorGreen), nil},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorRed), nil},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorYellow), &StyleWarning},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray), nil},
}

// statusLine prefixes text with the icon for k.
func statusLine(k statusKind, text string) string {
	s := statusIcons[k]
	if s.body != nil {
		text = s.body.Render(text)
	}
	return s.style.Render(s.icon) + " " + text
}

func printStatus(k statusKind, format string, args ...any) {
	fmt.Fprintln(stdout, statusLine(k, fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "  → path" for a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// =============================================================================
// Layout Summaries
// =============================================================================

func cacheLabel(cached bool) string {
	if cached {
		return iconCached
	}
	return iconFresh
}

// formatStats summarizes a pipeline result on one line, e.g.
// "12 boxes · 2 spacers · 2 of 3 lines · fresh".
func formatStats(res *pipeline.Result) string {
	spacers := 0
	for _, b := range res.Boxes {
		if b.Spacer {
			spacers++
		}
	}

	parts := []string{fmt.Sprintf("%d boxes", len(res.Boxes)-spacers)}
	if spacers > 0 {
		parts = append(parts, fmt.Sprintf("%d spacers", spacers))
	}
	if shown, total := res.Layout.ShownLines, res.Stats.LineCount; shown < total {
		parts = append(parts, fmt.Sprintf("%d of %d lines", shown, total))
	} else {
		parts = append(parts, fmt.Sprintf("%d lines", total))
	}

	sep := StyleDim.Render(" · ")
	status := lipgloss.NewStyle().Foreground(colorGray)
	if res.CacheInfo.LayoutHit {
		status = status.Foreground(colorGreen)
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · ")) + sep + status.Render(cacheLabel(res.CacheInfo.LayoutHit))
}

// lineTable renders one row per line with its box count, size, how full it
// is relative to the frame, and whether --max-lines hides it.
func lineTable(res engine.Result) string {
	rows := make([][]string, 0, len(res.Lines))
	for i, l := range res.Lines {
		fill := "-"
		if res.MeasuredWidth > 0 {
			fill = strconv.Itoa(100*l.Width/res.MeasuredWidth) + "%"
		}
		shown := "yes"
		if i >= res.ShownLines {
			shown = "no"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), strconv.Itoa(l.Len()),
			strconv.Itoa(l.Width), strconv.Itoa(l.Height), fill, shown,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Line", "Boxes", "Width", "Height", "Fill", "Shown").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row >= res.ShownLines:
				return cell.Foreground(colorDim)
			case col == 0:
				return cell.Foreground(colorCyan)
			}
			return cell
		}).
		Render()
}

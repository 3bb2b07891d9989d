package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// stdout receives status lines. Logs go to the logger's writer instead, so
// piping a command's output never mixes the two.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

// Colors are named for what they mark, so the terminal viewer and the status
// lines agree: a pinned node and a warning share the same amber.
var (
	colorAccent  = lipgloss.Color("36")  // titles, selection, spinner
	colorOK      = lipgloss.Color("35")  // completed work
	colorPinned  = lipgloss.Color("220") // pinned nodes, paused state
	colorFailure = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorValue   = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

var (
	// StyleTitle renders the app name in headers.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight marks the selected node.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleDim renders secondary text such as key hints and stats.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	// StyleWarning marks paused and pinned state.
	StyleWarning = lipgloss.NewStyle().Foreground(colorPinned)

	styleValue       = lipgloss.NewStyle().Foreground(colorValue)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
	styleKey         = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleIconError   = lipgloss.NewStyle().Foreground(colorFailure)
)

// =============================================================================
// Status lines
// =============================================================================

type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusError:   {"✗", styleIconError},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

func status(kind statusKind, format string, args ...any) {
	s := statusIcons[kind]
	fmt.Fprintln(stdout, s.style.Render(s.icon)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(statusSuccess, format, args...) }
func printError(format string, args ...any)   { status(statusError, format, args...) }
func printInfo(format string, args ...any)    { status(statusInfo, format, args...) }

// printFile lists a written file under the preceding status line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats summarizes a run on one line:
//
//	17 nodes · 16 edges · 100 steps · 12ms
func printStats(s pipeline.Stats) {
	parts := []string{
		fmt.Sprintf("%d nodes", s.NodeCount),
		fmt.Sprintf("%d edges", s.EdgeCount),
		fmt.Sprintf("%d steps", s.Steps),
		(s.LayoutTime + s.RenderTime).Round(time.Millisecond).String(),
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

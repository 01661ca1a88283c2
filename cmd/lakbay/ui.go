package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	warnColor    = lipgloss.Color("#F59E0B")

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Bold(true).
			Padding(0, 3)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	stepStyle = lipgloss.NewStyle().
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

const (
	ruleWidth = 50
	// Sources longer than listingLimit lines are shown as their first and
	// last listingEdge lines.
	listingLimit = 30
	listingEdge  = 15
)

// presenter writes the human readable progress of a command.
type presenter struct {
	w io.Writer
}

func (p presenter) banner() {
	fmt.Fprintln(p.w, bannerStyle.Render("LAKBAY PROGRAMMING LANGUAGE\nTranspile • Compile • Run"))
	fmt.Fprintln(p.w)
}

func (p presenter) section(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w, mutedStyle.Render(rule))
	fmt.Fprintln(p.w, headerStyle.Render(title))
	fmt.Fprintln(p.w, mutedStyle.Render(rule))
}

func (p presenter) rule() {
	fmt.Fprintln(p.w, mutedStyle.Render(strings.Repeat("=", ruleWidth)))
}

func (p presenter) step(n, total int, msg string) {
	fmt.Fprintln(p.w, stepStyle.Render(fmt.Sprintf("[%d/%d] %s", n, total, msg)))
}

func (p presenter) success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render("   ✓ "+fmt.Sprintf(format, args...)))
}

func (p presenter) failure(format string, args ...any) {
	fmt.Fprintln(p.w, errorStyle.Render("   ✗ "+fmt.Sprintf(format, args...)))
}

func (p presenter) warn(format string, args ...any) {
	fmt.Fprintln(p.w, warnStyle.Render("   ! "+fmt.Sprintf(format, args...)))
}

func (p presenter) info(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render("   "+fmt.Sprintf(format, args...)))
}

func (p presenter) plain(s string) {
	fmt.Fprintln(p.w, s)
}

// listing prints src with line numbers.
func (p presenter) listing(src string) {
	lines := strings.Split(src, "\n")
	number := func(i int) {
		fmt.Fprintf(p.w, "%s %s\n", lineNumberStyle.Render(fmt.Sprintf("%3d:", i+1)), lines[i])
	}
	if len(lines) <= listingLimit {
		for i := range lines {
			number(i)
		}
		return
	}
	for i := range listingEdge {
		number(i)
	}
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf("     ... (%d more lines) ...", len(lines)-2*listingEdge)))
	for i := len(lines) - listingEdge; i < len(lines); i++ {
		number(i)
	}
}

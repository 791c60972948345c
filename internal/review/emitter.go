// Package review shows what an install would fetch and asks the operator to
// confirm it.
package review

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/frederic-klein/pip-safe/internal/dist"
)

// Entry is the review result for one requirement as the operator typed it.
type Entry struct {
	Spec     string
	Resolved bool
	Metadata dist.Metadata
}

// Emitter writes review entries in a fixed, human-readable layout.
type Emitter struct {
	w      io.Writer
	styled bool
	header lipgloss.Style
	warn   lipgloss.Style
}

// NewEmitter creates an emitter. When styled is false output carries no
// terminal escape sequences.
func NewEmitter(w io.Writer, styled bool) *Emitter {
	r := lipgloss.NewRenderer(w)
	return &Emitter{
		w:      w,
		styled: styled,
		header: r.NewStyle().Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// ColorTerminal reports whether f is a terminal that should get styled
// output. NO_COLOR disables styling.
func ColorTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (e *Emitter) render(s lipgloss.Style, text string) string {
	if !e.styled {
		return text
	}
	return s.Render(text)
}

// Emit writes every entry in order.
func (e *Emitter) Emit(entries []Entry) error {
	for _, en := range entries {
		if err := e.emitEntry(en); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitEntry(en Entry) error {
	head := e.render(e.header, "→ "+en.Spec)

	if !en.Resolved {
		_, err := fmt.Fprintf(e.w, "\n%s  %s\n", head, e.render(e.warn, "— no matching release found on PyPI"))
		return err
	}

	md := en.Metadata
	if _, err := fmt.Fprintf(e.w, "\n%s  (will install v%s)\n", head, md.Version); err != nil {
		return err
	}

	fields := []struct {
		label string
		value dist.Field
	}{
		{"Summary      ", md.Summary},
		{"Author       ", md.Author},
		{"Documentation", md.Documentation},
		{"Homepage     ", md.Homepage},
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(e.w, "    %s: %s\n", f.label, f.value); err != nil {
			return err
		}
	}
	return nil
}

package screen

import (
	"fmt"
	"io"
	"strings"
)

// Render writes a plain-text rendition of s, including the action hint for
// the phase.
func Render(w io.Writer, s State) error {
	var b strings.Builder

	switch s.Phase {
	case PhaseLoading:
		b.WriteString("Loading...\n")
	case PhaseError:
		fmt.Fprintf(&b, "%s\n\n[r] Retry  [q] Quit\n", s.Message)
	case PhaseReady:
		view, ok := s.View()
		if !ok {
			b.WriteString("No weather data available\n\n[r] Retry  [q] Quit\n")
			break
		}
		b.WriteString(view.Title + "\n")
		for _, section := range view.Sections {
			fmt.Fprintf(&b, "\n%s\n", section.Title)
			for _, f := range section.Fields {
				fmt.Fprintf(&b, "  %s\n", f)
			}
		}
		b.WriteString("\n[r] Refresh  [q] Quit\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

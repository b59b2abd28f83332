package tipcli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette borrowed from the original desktop form.
var (
	colorResult = lipgloss.Color("#00FF00")
	colorLabel  = lipgloss.Color("#7289DA")
	colorError  = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#8E9297")
)

// styles renders CLI output. A plain styles value passes text through.
type styles struct {
	plain bool

	label    lipgloss.Style
	result   lipgloss.Style
	muted    lipgloss.Style
	errTitle lipgloss.Style
	errBox   lipgloss.Style
}

// newStyles binds styles to w so colour is only emitted on terminals that
// support it.
func newStyles(w io.Writer, plain bool) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		plain:    plain,
		label:    r.NewStyle().Foreground(colorLabel),
		result:   r.NewStyle().Bold(true).Foreground(colorResult),
		muted:    r.NewStyle().Foreground(colorMuted),
		errTitle: r.NewStyle().Bold(true).Foreground(colorError),
		errBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return st.Render(text)
}

// Label styles a field label.
func (s styles) Label(text string) string { return s.render(s.label, text) }

// Result styles the crisp tip.
func (s styles) Result(text string) string { return s.render(s.result, text) }

// Muted styles secondary detail.
func (s styles) Muted(text string) string { return s.render(s.muted, text) }

// ErrorBox renders a titled error message.
func (s styles) ErrorBox(title, msg string) string {
	if s.plain {
		return title + ": " + msg
	}
	return s.errBox.Render(lipgloss.JoinVertical(lipgloss.Left, s.errTitle.Render(title), msg))
}

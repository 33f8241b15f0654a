package output

import "github.com/muesli/termenv"

// Style renders text with a fixed terminal decoration. The zero value
// renders text unchanged.
type Style struct {
	apply func(string) string
}

// Render applies the style to text.
func (s Style) Render(text string) string {
	if s.apply == nil {
		return text
	}
	return s.apply(text)
}

// Styles is the palette used by command output. On non-terminal writers
// every style degrades to plain text.
type Styles struct {
	Success Style
	Error   Style
	Warning Style
	Info    Style
	Muted   Style
	Bold    Style
	Header  Style
}

func newStyles(o *termenv.Output) Styles {
	fg := func(c string) Style {
		return Style{apply: func(s string) string {
			return o.String(s).Foreground(o.Color(c)).String()
		}}
	}
	return Styles{
		Success: fg("2"),
		Error:   fg("1"),
		Warning: fg("3"),
		Info:    fg("6"),
		Muted:   fg("8"),
		Bold:    Style{apply: func(s string) string { return o.String(s).Bold().String() }},
		Header:  Style{apply: func(s string) string { return o.String(s).Bold().Underline().String() }},
	}
}

// Package overlay draws one view on top of another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose overlays top on base, line by line. Visible (non-blank) runs of
// each top line replace the base at the same columns; blank lines leave the
// base untouched. It is ANSI-aware.
func Compose(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(top, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		start := len(plain) - len(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(strings.TrimRight(plain, " "))
		baseLines[i] = splice(baseLines[i], ansi.Cut(line, start, end), start, end, width)
	}
	return strings.Join(baseLines, "\n")
}

// Bottom replaces the last line of base with line, padded to width.
func Bottom(base, line string, width int) string {
	lines := strings.Split(base, "\n")
	if len(lines) == 0 {
		return base
	}
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	lines[len(lines)-1] = ansi.Truncate(line, width, "")
	return strings.Join(lines, "\n")
}

// splice writes content over columns [start, end) of line.
func splice(line, content string, start, end, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}

	// Cutting through a wide character can leave the prefix short.
	prefix := ansi.Cut(line, 0, start)
	if w := ansi.StringWidth(prefix); w < start {
		prefix += strings.Repeat(" ", start-w)
	}
	out := prefix + content
	if end >= width {
		return out
	}

	suffix := ansi.Cut(line, end, width)
	want := width - end
	switch w := ansi.StringWidth(suffix); {
	case w > want:
		suffix = " " + ansi.Cut(suffix, w-want+1, w)
	case w < want:
		suffix += strings.Repeat(" ", want-w)
	}
	return out + suffix
}

// Package rename builds file names from tags with a placeholder template.
package rename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/llehouerou/tagdeck/internal/tags"
)

// DefaultTemplate names a file by track number and title.
const DefaultTemplate = "{tracknumber} - {title}"

// Config holds the rename configuration.
type Config struct {
	Template string // file name without extension

	AndToAmpersand    bool // "and" → "&"
	RemoveFeat        bool // strip "feat." from values
	EllipsisNormalize bool // "..." → "…"
}

// DefaultConfig returns the default template with every transform off.
func DefaultConfig() Config {
	return Config{Template: DefaultTemplate}
}

var (
	reAnd   = regexp.MustCompile(`(?i)\sand\s`)
	re3Dots = regexp.MustCompile(`\.{3}`)
	// reFeat matches " feat. Artist", " ft. Artist" and their bracketed forms.
	reFeat          = regexp.MustCompile(`\s+(?:[\[\({][^)\]}]*)?f(?:ea)?t\.?[^)\]}]*[\]\)}]?.*$`)
	reQuestionMarks = regexp.MustCompile(`[¿?]+`)
	// U+0022 ("), U+201C ("), U+201D ("), U+2018 ('), U+2019 (')
	reQuoteMarks = regexp.MustCompile(`["\x{201c}\x{201d}\x{2018}\x{2019}]+`)
	// reIllegalFileChars matches characters not allowed in file names on
	// common file systems, with surrounding whitespace.
	reIllegalFileChars = regexp.MustCompile(`\s*[/\\><*:|]+\s*`)
	reMultiSpace       = regexp.MustCompile(`\s+`)
	reLeadingJunk      = regexp.MustCompile(`^[\s\-•·.]+`)
	reTrailingJunk     = regexp.MustCompile(`[\s\-•·.]+$`)
)

// separators are template literals dropped when the placeholder before
// them is empty.
var separators = map[string]bool{"-": true, "•": true, "·": true, "_": true, ".": true, "": true}

// FileName returns the new name of t's file from cfg's template, keeping
// the file's extension. It returns "" when the template resolves to
// nothing usable.
func FileName(t *tags.Tag, cfg Config) string {
	if t == nil {
		return ""
	}
	template := cfg.Template
	if template == "" {
		template = DefaultTemplate
	}

	var b strings.Builder
	skipSeparator := false
	for _, seg := range parseTemplate(template) {
		if seg.isPlaceholder {
			v := transform(resolvePlaceholder(seg.value, t), cfg)
			b.WriteString(v)
			skipSeparator = v == ""
			continue
		}
		if skipSeparator && separators[strings.TrimSpace(seg.value)] {
			continue
		}
		b.WriteString(seg.value)
	}

	name := cleanForFilename(b.String())
	name = reLeadingJunk.ReplaceAllString(name, "")
	name = reTrailingJunk.ReplaceAllString(name, "")
	if name == "" {
		return ""
	}
	return name + filepath.Ext(t.Path)
}

func resolvePlaceholder(name string, t *tags.Tag) string {
	switch name {
	case "artist":
		return t.Artist
	case "albumartist":
		if t.AlbumArtist == "" {
			return t.Artist
		}
		return t.AlbumArtist
	case "album":
		return t.Album
	case "title":
		return t.Title
	case "genre":
		return t.Genre
	case "date":
		return t.Date
	case "year":
		return getYear(t.Date)
	case "tracknumber":
		if t.TrackNumber <= 0 {
			return ""
		}
		return fmt.Sprintf("%02d", t.TrackNumber)
	case "discnumber":
		if t.DiscNumber <= 0 {
			return ""
		}
		return fmt.Sprintf("%d", t.DiscNumber)
	}
	return "{" + name + "}"
}

func transform(s string, cfg Config) string {
	if cfg.RemoveFeat {
		s = reFeat.ReplaceAllString(s, "")
	}
	if cfg.EllipsisNormalize {
		s = re3Dots.ReplaceAllString(s, "…")
	}
	if cfg.AndToAmpersand {
		s = reAnd.ReplaceAllString(s, " & ")
	}
	return strings.TrimSpace(s)
}

// cleanForFilename makes s safe as a file name.
func cleanForFilename(s string) string {
	s = reQuestionMarks.ReplaceAllString(s, "")
	s = reQuoteMarks.ReplaceAllString(s, "'")
	s = reIllegalFileChars.ReplaceAllString(s, " - ")
	return strings.TrimSpace(reMultiSpace.ReplaceAllString(s, " "))
}

// getYear extracts the year from a YYYY or YYYY-MM-DD date.
func getYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

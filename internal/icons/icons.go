// Package icons prefixes folder and file names with the configured glyphs.
package icons

import "github.com/llehouerou/tagdeck/internal/tags"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Folder string
	Audio  string
	File   string
}

var (
	nerdIcons = Icons{
		Folder: "\uf07b ", // nf-fa-folder
		Audio:  "\uf001 ", // nf-fa-music
		File:   "\uf15b ", // nf-fa-file
	}

	unicodeIcons = Icons{
		Folder: "📁 ",
		Audio:  "🎵 ",
		File:   "📄 ",
	}

	noneIcons = Icons{}

	// current holds the active icon set
	current = noneIcons
)

// Init selects the icon set. Unknown styles give no icons.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Active returns the icon set in use.
func Active() Icons {
	return current
}

// FormatDir formats a folder name with the folder icon.
func FormatDir(name string) string {
	return current.Folder + name
}

// FormatFile formats a file name with the music or plain file icon.
func FormatFile(name string) string {
	if tags.IsMusicFile(name) {
		return current.Audio + name
	}
	return current.File + name
}

package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type writer func(path string, t *Tag) error

var writers = map[string]writer{
	ExtMP3:  writeMP3Tags,
	ExtFLAC: writeFLACTags,
	ExtOPUS: writeOggTags,
	ExtOGG:  writeOggTags,
	ExtOGA:  writeOggTags,
	ExtM4A:  writeM4ATags,
	ExtMP4:  writeM4ATags,
}

// Write replaces the tags of a music file in place. Fields other than the
// editable ones are left as the format's writer handles them.
func Write(path string, t *Tag) error {
	if t == nil {
		return fmt.Errorf("write %s: no tags", filepath.Base(path))
	}
	ext := strings.ToLower(filepath.Ext(path))
	w, ok := writers[ext]
	if !ok {
		return fmt.Errorf("unsupported file format: %s", ext)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}
	return w(path, t)
}

package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeOggTags writes Vorbis comments to an Ogg Vorbis or Opus file using
// TagLib. Only the form fields are replaced.
func writeOggTags(path string, t *Tag) error {
	tags := map[string][]string{
		taglib.Title:       nil,
		taglib.Artist:      nil,
		taglib.AlbumArtist: nil,
		taglib.Album:       nil,
		taglib.Genre:       nil,
		taglib.Date:        nil,
		taglib.TrackNumber: nil,
		taglib.DiscNumber:  nil,
		totalTracks:        nil,
		totalDiscs:         nil,
		comment:            nil,
	}
	for _, kv := range vorbisComments(t) {
		tags[kv[0]] = []string{kv[1]}
	}

	// Without taglib.Clear, keys mapped to nil are removed and the rest of
	// the file's tags are left alone.
	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}

package tags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// editedVorbisKeys are the comment keys owned by the metadata form.
var editedVorbisKeys = map[string]bool{
	"TITLE": true, "ARTIST": true, "ALBUMARTIST": true, "ALBUM": true,
	"GENRE": true, "DATE": true, "TRACKNUMBER": true, "TOTALTRACKS": true,
	"DISCNUMBER": true, "TOTALDISCS": true, "COMMENT": true,
}

// writeFLACTags rewrites the Vorbis comment block of a FLAC file. Comments
// the form does not edit are carried over.
func writeFLACTags(path string, t *Tag) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmtIdx := -1
	cmts := flacvorbis.New()
	for i, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmtIdx = i
		existing, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return fmt.Errorf("parse comments: %w", err)
		}
		cmts.Vendor = existing.Vendor
		for _, c := range existing.Comments {
			key, _, _ := strings.Cut(c, "=")
			if !editedVorbisKeys[strings.ToUpper(key)] {
				cmts.Comments = append(cmts.Comments, c)
			}
		}
		break
	}

	for _, kv := range vorbisComments(t) {
		if err := cmts.Add(kv[0], kv[1]); err != nil {
			return fmt.Errorf("add %s: %w", strings.ToLower(kv[0]), err)
		}
	}

	block := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// vorbisComments returns the non-empty form fields as Vorbis key/value pairs.
func vorbisComments(t *Tag) [][2]string {
	var out [][2]string
	add := func(key, value string) {
		if value != "" {
			out = append(out, [2]string{key, value})
		}
	}
	addInt := func(key string, value int) {
		if value > 0 {
			add(key, strconv.Itoa(value))
		}
	}
	add("TITLE", t.Title)
	add("ARTIST", t.Artist)
	add("ALBUMARTIST", t.AlbumArtist)
	add("ALBUM", t.Album)
	add("GENRE", t.Genre)
	add("DATE", t.Date)
	addInt("TRACKNUMBER", t.TrackNumber)
	addInt("TOTALTRACKS", t.TotalTracks)
	addInt("DISCNUMBER", t.DiscNumber)
	addInt("TOTALDISCS", t.TotalDiscs)
	add("COMMENT", t.Comment)
	return out
}

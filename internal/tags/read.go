package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Custom tag keys not in taglib constants
const (
	totalTracks = "TOTALTRACKS"
	totalDiscs  = "TOTALDISCS"
	comment     = "COMMENT"
)

// Read reads tag metadata from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	m, err := tag.ReadFrom(f)
	if err != nil {
		switch ext {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtM4A, ExtMP4, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA:
			return readWithTaglib(path)
		}
		return nil, err
	}

	track, total := m.Track()
	disc, discs := m.Disc()
	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		Comment:     m.Comment(),
		Date:        yearToDate(m.Year()),
		TrackNumber: track,
		TotalTracks: total,
		DiscNumber:  disc,
		TotalDiscs:  discs,
	}

	// dhowden/tag only exposes the year; full dates live in format specific frames.
	switch ext {
	case ExtMP3:
		if id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true}); err == nil {
			if date := mp3Date(id3tag); date != "" {
				t.Date = date
			}
			id3tag.Close()
		}
	default:
		if raw, err := taglib.ReadTags(path); err == nil {
			if date := taglibTags(raw).get(taglib.Date); date != "" {
				t.Date = date
			}
		}
	}
	return t, nil
}

// readWithTaglib reads metadata using TagLib as fallback when dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(raw)

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		Date:        tags.get(taglib.Date),
		Comment:     tags.get(comment),
	}
	t.TrackNumber, t.TotalTracks = tags.pair(taglib.TrackNumber, totalTracks)
	t.DiscNumber, t.TotalDiscs = tags.pair(taglib.DiscNumber, totalDiscs)
	return t, nil
}

// readMP3WithID3v2 reads MP3 tags with bogem/id3v2 when dhowden/tag fails.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		Date:        mp3Date(id3tag),
	}
	t.TrackNumber, t.TotalTracks, _ = parseNumberPair(getID3TextFrame(id3tag, "TRCK"))
	t.DiscNumber, t.TotalDiscs, _ = parseNumberPair(getID3TextFrame(id3tag, "TPOS"))
	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Comments")) {
		if cf, ok := frame.(id3v2.CommentFrame); ok {
			t.Comment = cf.Text
			break
		}
	}
	return t, nil
}

// mp3Date reads TDRC (ID3v2.4) and falls back to TYER+TDAT (ID3v2.3).
func mp3Date(id3tag *id3v2.Tag) string {
	if date := getID3TextFrame(id3tag, "TDRC"); date != "" {
		return date
	}
	year := getID3TextFrame(id3tag, "TYER")
	if year == "" {
		return ""
	}
	// TDAT is DDMM
	if tdat := getID3TextFrame(id3tag, "TDAT"); len(tdat) == 4 {
		return year + "-" + tdat[2:4] + "-" + tdat[0:2]
	}
	return year
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// yearToDate converts a year integer to a date string.
// Returns empty string for year 0.
func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

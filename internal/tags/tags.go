// Package tags reads and writes the editable metadata of music files.
// It handles MP3, FLAC, Ogg (Vorbis and Opus) and M4A.
package tags

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag holds the metadata fields shown in the metadata pane.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Date        string // YYYY-MM-DD or YYYY
	Comment     string

	TrackNumber int
	TotalTracks int
	DiscNumber  int
	TotalDiscs  int
}

// Field names one editable tag field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldArtist      Field = "artist"
	FieldAlbumArtist Field = "albumartist"
	FieldAlbum       Field = "album"
	FieldGenre       Field = "genre"
	FieldDate        Field = "date"
	FieldTrack       Field = "track"
	FieldDisc        Field = "disc"
	FieldComment     Field = "comment"
)

// Fields lists the editable fields in form order.
var Fields = []Field{
	FieldTitle, FieldArtist, FieldAlbumArtist, FieldAlbum,
	FieldGenre, FieldDate, FieldTrack, FieldDisc, FieldComment,
}

// Label returns the human readable field name.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldArtist:
		return "Artist"
	case FieldAlbumArtist:
		return "Album artist"
	case FieldAlbum:
		return "Album"
	case FieldGenre:
		return "Genre"
	case FieldDate:
		return "Date"
	case FieldTrack:
		return "Track"
	case FieldDisc:
		return "Disc"
	case FieldComment:
		return "Comment"
	}
	return string(f)
}

// Get returns the string form of a field. Numbered fields render as "N" or
// "N/M".
func (t *Tag) Get(f Field) string {
	switch f {
	case FieldTitle:
		return t.Title
	case FieldArtist:
		return t.Artist
	case FieldAlbumArtist:
		return t.AlbumArtist
	case FieldAlbum:
		return t.Album
	case FieldGenre:
		return t.Genre
	case FieldDate:
		return t.Date
	case FieldTrack:
		return formatNumberPair(t.TrackNumber, t.TotalTracks)
	case FieldDisc:
		return formatNumberPair(t.DiscNumber, t.TotalDiscs)
	case FieldComment:
		return t.Comment
	}
	return ""
}

// Set parses value into a field.
func (t *Tag) Set(f Field, value string) error {
	value = strings.TrimSpace(value)
	switch f {
	case FieldTitle:
		t.Title = value
	case FieldArtist:
		t.Artist = value
	case FieldAlbumArtist:
		t.AlbumArtist = value
	case FieldAlbum:
		t.Album = value
	case FieldGenre:
		t.Genre = value
	case FieldDate:
		if value != "" && !validDate(value) {
			return fmt.Errorf("invalid date %q: want YYYY, YYYY-MM or YYYY-MM-DD", value)
		}
		t.Date = value
	case FieldTrack:
		num, total, err := parseNumberPair(value)
		if err != nil {
			return fmt.Errorf("invalid track: %w", err)
		}
		t.TrackNumber, t.TotalTracks = num, total
	case FieldDisc:
		num, total, err := parseNumberPair(value)
		if err != nil {
			return fmt.Errorf("invalid disc: %w", err)
		}
		t.DiscNumber, t.TotalDiscs = num, total
	case FieldComment:
		t.Comment = value
	default:
		return fmt.Errorf("unknown field %q", f)
	}
	return nil
}

// Clone returns a copy of t.
func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}

// Year derives the year from the Date field.
// Returns 0 if Date is empty or cannot be parsed.
func (t *Tag) Year() int {
	if len(t.Date) < 4 {
		return 0
	}
	y, _ := strconv.Atoi(t.Date[:4])
	return y
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

func formatNumberPair(num, total int) string {
	switch {
	case num <= 0:
		return ""
	case total > 0:
		return strconv.Itoa(num) + "/" + strconv.Itoa(total)
	}
	return strconv.Itoa(num)
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M".
func parseNumberPair(s string) (num, total int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	numStr, totalStr, hasTotal := strings.Cut(s, "/")
	if num, err = strconv.Atoi(strings.TrimSpace(numStr)); err != nil || num < 0 {
		return 0, 0, fmt.Errorf("%q is not a number", numStr)
	}
	if hasTotal {
		if total, err = strconv.Atoi(strings.TrimSpace(totalStr)); err != nil || total < 0 {
			return 0, 0, fmt.Errorf("%q is not a number", totalStr)
		}
	}
	return num, total, nil
}

func validDate(s string) bool {
	if len(s) != 4 && len(s) != 7 && len(s) != 10 {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			if r != '-' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// pair parses a number field that may carry its total inline, falling back
// to a separate total key.
func (t taglibTags) pair(key, totalKey string) (num, total int) {
	num, total, _ = parseNumberPair(t.get(key))
	if total == 0 {
		total, _ = strconv.Atoi(t.get(totalKey))
	}
	return num, total
}

package tags

import (
	"fmt"

	"github.com/Sorrow446/go-mp4tag"
)

func writeM4ATags(path string, t *Tag) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	if err := mp4.Write(m4aTags(t), nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// m4aTags maps t to the atoms go-mp4tag writes. Genre goes to the free-form
// atom since the numeric one only holds ID3v1 genres.
func m4aTags(t *Tag) *mp4tag.MP4Tags {
	return &mp4tag.MP4Tags{
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		AlbumArtist: t.AlbumArtist,
		CustomGenre: t.Genre,
		Date:        t.Date,
		Comment:     t.Comment,
		TrackNumber: clampInt16(t.TrackNumber),
		TrackTotal:  clampInt16(t.TotalTracks),
		DiscNumber:  clampInt16(t.DiscNumber),
		DiscTotal:   clampInt16(t.TotalDiscs),
	}
}

func clampInt16(n int) int16 {
	return int16(min(max(n, 0), 32767))
}

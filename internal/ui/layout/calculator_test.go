package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHeight(t *testing.T) {
	tests := []struct {
		name   string
		window int
		want   int
	}{
		{"normal", 40, 38},
		{"tiny", 2, 0},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentHeight(tt.window))
		})
	}
}

func TestPaneWidths(t *testing.T) {
	tests := []struct {
		name   string
		window int
		want   Panes
	}{
		{"wide", 120, Panes{Folders: 36, Files: 48, Metadata: 36}},
		{"minimum side panes", 40, Panes{Folders: 12, Files: 16, Metadata: 12}},
		{"even split when narrow", 31, Panes{Folders: 10, Files: 11, Metadata: 10}},
		{"zero", 0, Panes{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaneWidths(tt.window)
			assert.Equal(t, tt.want, got)
			if tt.window > 0 {
				assert.Equal(t, tt.window, got.Folders+got.Files+got.Metadata)
			}
		})
	}
}

func TestStatusRow(t *testing.T) {
	assert.Equal(t, 40, StatusRow(40))
	assert.Equal(t, 1, StatusRow(0))
}

package navigator

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects the field entries are ordered by.
type SortKey int

const (
	SortByName SortKey = iota
	SortBySize
	SortByModified
	SortByExtension
)

// Direction is the sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// FolderSortKeys are the keys the folder tree cycles through.
var FolderSortKeys = []SortKey{SortByName, SortByModified}

// FileSortKeys are the keys the file list cycles through.
var FileSortKeys = []SortKey{SortByName, SortBySize, SortByModified, SortByExtension}

func (k SortKey) String() string {
	switch k {
	case SortByName:
		return "name"
	case SortBySize:
		return "size"
	case SortByModified:
		return "modified"
	case SortByExtension:
		return "extension"
	}
	return "unknown"
}

// Next returns the key after k in keys, wrapping around. Keys not in the
// list restart at the first one.
func (k SortKey) Next(keys []SortKey) SortKey {
	if len(keys) == 0 {
		return k
	}
	i := slices.Index(keys, k)
	return keys[(i+1)%len(keys)]
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort orders entries in place. Ties fall back to the case-insensitive name
// so the order is deterministic.
func Sort(entries []Entry, key SortKey, dir Direction) {
	slices.SortStableFunc(entries, SortFunc(key, dir))
}

// SortFunc returns the comparison Sort uses, for callers ordering their own
// wrappers of entries.
func SortFunc(key SortKey, dir Direction) func(a, b Entry) int {
	return func(a, b Entry) int {
		c := compareBy(a, b, key)
		if c == 0 && key != SortByName {
			c = compareBy(a, b, SortByName)
		}
		if dir == Descending {
			return -c
		}
		return c
	}
}

func compareBy(a, b Entry, key SortKey) int {
	switch key {
	case SortBySize:
		return cmp.Compare(a.Size, b.Size)
	case SortByModified:
		return a.ModTime.Compare(b.ModTime)
	case SortByExtension:
		return cmp.Compare(a.Ext(), b.Ext())
	}
	if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

package focus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagdeck/internal/element"
)

func newList(t *testing.T, rows, view int) (*element.Document, *element.Element) {
	t.Helper()
	doc := element.NewDocument()
	list := element.NewScroller("list", element.KindList)
	list.ViewHeight = view
	for i := range rows {
		list.Append(element.New(fmt.Sprintf("item-%d", i), element.KindListItem))
	}
	list.LayoutRows()
	doc.Root().Append(list)
	return doc, list
}

func TestFocus_SingleIndicator(t *testing.T) {
	doc, list := newList(t, 5, 10)
	l := NewLedger(doc)

	l.AddFocus(list.Children()[0])
	list.Children()[3].SetLogicalFocus(true) // stray marker
	require.True(t, l.Focus(list.Children()[1]))

	focused := doc.LogicallyFocused()
	require.Len(t, focused, 1)
	assert.Same(t, list.Children()[1], focused[0])
	assert.Same(t, list.Children()[1], doc.ActiveElement())
	assert.Same(t, list.Children()[1], l.Focused())
}

func TestFocus_SequenceKeepsAtMostOne(t *testing.T) {
	doc, list := newList(t, 5, 10)
	l := NewLedger(doc)

	for _, idx := range []int{0, 4, 2, 2, 1} {
		l.AddFocus(list.Children()[idx])
		assert.Len(t, doc.LogicallyFocused(), 1)
	}
	l.ClearAll()
	assert.Empty(t, doc.LogicallyFocused())
	assert.Nil(t, l.Focused())
}

func TestRemoveFocus(t *testing.T) {
	doc, list := newList(t, 3, 10)
	l := NewLedger(doc)
	item := list.Children()[1]

	l.AddFocus(item)
	l.RemoveFocus(item)

	assert.False(t, item.LogicallyFocused())
	assert.Nil(t, l.Focused())
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name       string
		scrollTop  int
		inset      int
		index      int
		wantScroll int
		wantMoved  bool
	}{
		{"already inside band", 0, 0, 3, 0, false},
		{"below band scrolls minimally", 0, 0, 9, 1, true},
		{"row just above bottom padding", 0, 0, 8, 0, false},
		{"above band scrolls minimally", 10, 0, 9, 8, true},
		{"top row clamps at zero", 3, 0, 0, 0, true},
		{"bottom inset widens padding", 0, 3, 5, 0, false},
		{"bottom inset hides row", 0, 3, 6, 1, true},
		{"last row clamps to content", 0, 0, 19, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, list := newList(t, 20, 10)
			list.ScrollTop = tt.scrollTop
			list.BottomInset = tt.inset
			l := NewLedger(doc)

			moved := l.EnsureVisible(list.Children()[tt.index])

			assert.Equal(t, tt.wantMoved, moved)
			assert.Equal(t, tt.wantScroll, list.ScrollTop)
		})
	}
}

func TestEnsureVisible_NoScrollContainer(t *testing.T) {
	doc := element.NewDocument()
	btn := element.New("btn", element.KindButton)
	doc.Root().Append(btn)

	assert.False(t, NewLedger(doc).EnsureVisible(btn))
}

func TestPopFocus_SkipsStaleEntries(t *testing.T) {
	doc, list := newList(t, 4, 10)
	l := NewLedger(doc)
	a, b, c := list.Children()[0], list.Children()[1], list.Children()[2]

	l.PushFocus(a)
	l.PushFocus(b)
	l.PushFocus(c)
	c.Detach()
	b.SetHidden(true)

	got := l.PopFocus()

	assert.Same(t, a, got)
	assert.True(t, a.LogicallyFocused())
	assert.Same(t, a, doc.ActiveElement())
	assert.Nil(t, l.PopFocus())
}

func TestPushFocus_Capped(t *testing.T) {
	doc, list := newList(t, HistoryCap+10, 10)
	l := NewLedger(doc)

	for _, el := range list.Children() {
		l.PushFocus(el)
	}

	assert.Equal(t, HistoryCap, l.HistoryLen())
	assert.Same(t, list.Children()[HistoryCap+9], l.PopFocus())
}

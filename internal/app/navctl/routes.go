package navctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/keymap"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/router"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

// Route priorities, highest first.
const (
	PrioritySwitch = 100 // pane cycling, any state
	PriorityHeader = 90
	PriorityText   = 80 // filter, field edit and rename commit/cancel
	PriorityList   = 70
	PriorityForm   = 60
	PriorityFiles  = 50
)

var listPanes = []element.Pane{element.PaneFolders, element.PaneFiles}

// RegisterRoutes installs the engine's routes. Keys come from the keymap
// so the help overlay and the routes stay in sync.
func (m *Manager) RegisterRoutes() {
	m.bind(keymap.ContextGlobal, keymap.ActionSwitchPane, PrioritySwitch,
		func(p router.Pattern) router.Pattern { return p },
		func(*router.Event, router.Context) tea.Cmd { return m.SwitchPanes() })

	// Header icons
	for _, action := range []keymap.Action{
		keymap.ActionIconLeft, keymap.ActionIconRight, keymap.ActionIconPress, keymap.ActionToList,
	} {
		m.bind(keymap.ContextHeader, action, PriorityHeader, inState(navstate.HeaderFocus),
			func(ev *router.Event, _ router.Context) tea.Cmd { return m.HandleHeaderNavigation(ev.String()) })
	}

	// Text entry
	m.bind(keymap.ContextFilter, keymap.ActionCommit, PriorityText, inState(navstate.FilterActive),
		func(_ *router.Event, ctx router.Context) tea.Cmd { return m.CloseFilter(m.filterPane(ctx), true) })
	m.bind(keymap.ContextFilter, keymap.ActionCancel, PriorityText, inState(navstate.FilterActive),
		func(_ *router.Event, ctx router.Context) tea.Cmd { return m.CloseFilter(m.filterPane(ctx), false) })
	m.bind(keymap.ContextEdit, keymap.ActionCommit, PriorityText, inState(navstate.FormEdit),
		func(*router.Event, router.Context) tea.Cmd { return m.EndFieldEdit(true) })
	m.bind(keymap.ContextEdit, keymap.ActionCancel, PriorityText, inState(navstate.FormEdit),
		func(*router.Event, router.Context) tea.Cmd { return m.EndFieldEdit(false) })
	m.bind(keymap.ContextEdit, keymap.ActionCommit, PriorityText, inState(navstate.InlineEdit),
		func(*router.Event, router.Context) tea.Cmd { return m.EndInlineEdit(true) })
	m.bind(keymap.ContextEdit, keymap.ActionCancel, PriorityText, inState(navstate.InlineEdit),
		func(*router.Event, router.Context) tea.Cmd { return m.EndInlineEdit(false) })
	m.bind(keymap.ContextEdit, keymap.ActionNameFromTags, PriorityText, inState(navstate.InlineEdit),
		func(*router.Event, router.Context) tea.Cmd {
			m.files.FillSuggestedName()
			return nil
		})

	// Lists
	inLists := inPanes(navstate.Normal, listPanes...)
	m.bind(keymap.ContextList, keymap.ActionMoveUp, PriorityList, inLists, m.step(false))
	m.bind(keymap.ContextList, keymap.ActionMoveDown, PriorityList, inLists, m.step(true))
	m.bind(keymap.ContextList, keymap.ActionPageUp, PriorityList, inLists, m.move(m.lists.PageUp))
	m.bind(keymap.ContextList, keymap.ActionPageDown, PriorityList, inLists, m.move(m.lists.PageDown))
	m.bind(keymap.ContextList, keymap.ActionJumpStart, PriorityList, inLists, m.move(m.lists.Home))
	m.bind(keymap.ContextList, keymap.ActionJumpEnd, PriorityList, inLists, m.move(m.lists.End))
	m.bind(keymap.ContextList, keymap.ActionFilter, PriorityList, inLists,
		func(_ *router.Event, ctx router.Context) tea.Cmd { return m.OpenFilter(ctx.Pane) })

	inFolders := inPanes(navstate.Normal, element.PaneFolders)
	m.bind(keymap.ContextFolders, keymap.ActionActivate, PriorityList, inFolders, m.move(m.lists.Activate))
	m.bind(keymap.ContextFolders, keymap.ActionCollapse, PriorityList, inFolders, m.move(m.lists.Collapse))
	m.bind(keymap.ContextFolders, keymap.ActionExpand, PriorityList, inFolders, m.move(m.lists.Expand))

	inFiles := inPanes(navstate.Normal, element.PaneFiles)
	m.bind(keymap.ContextFiles, keymap.ActionActivate, PriorityList, inFiles, m.move(m.lists.Activate))
	m.bind(keymap.ContextFiles, keymap.ActionRename, PriorityFiles, inFiles,
		func(*router.Event, router.Context) tea.Cmd { return m.BeginInlineEdit() })

	// Metadata form
	inForm := inPanes(navstate.Normal, element.PaneMetadata)
	onField := func(p router.Pattern) router.Pattern { return inForm(p).OnClass(metaform.FieldClass) }
	m.bind(keymap.ContextMetadata, keymap.ActionMoveUp, PriorityForm, inForm, m.step(false))
	m.bind(keymap.ContextMetadata, keymap.ActionMoveDown, PriorityForm, inForm, m.step(true))
	m.bind(keymap.ContextList, keymap.ActionPageUp, PriorityForm, inForm, m.move(m.lists.PageUp))
	m.bind(keymap.ContextList, keymap.ActionPageDown, PriorityForm, inForm, m.move(m.lists.PageDown))
	m.bind(keymap.ContextList, keymap.ActionJumpStart, PriorityForm, inForm, m.move(m.lists.Home))
	m.bind(keymap.ContextList, keymap.ActionJumpEnd, PriorityForm, inForm, m.move(m.lists.End))
	m.bind(keymap.ContextMetadata, keymap.ActionEditField, PriorityForm, onField,
		func(*router.Event, router.Context) tea.Cmd { return m.BeginFieldEdit() })
}

// bind registers one route per key bound to action in a keymap context.
func (m *Manager) bind(
	context string,
	action keymap.Action,
	priority int,
	refine func(router.Pattern) router.Pattern,
	h router.Handler,
) {
	for _, key := range keymap.Keys(context, action) {
		m.router.Register(refine(router.OnBinding(key)), h,
			router.WithPriority(priority),
			router.Named(context+"/"+string(action)))
	}
}

func inState(s navstate.State) func(router.Pattern) router.Pattern {
	return func(p router.Pattern) router.Pattern { return p.In(s) }
}

func inPanes(s navstate.State, panes ...element.Pane) func(router.Pattern) router.Pattern {
	return func(p router.Pattern) router.Pattern { return p.In(s).InPanes(panes...) }
}

// step moves one item per press and repeats while the key is held.
func (m *Manager) step(down bool) router.Handler {
	return func(ev *router.Event, ctx router.Context) tea.Cmd {
		p := m.pane(ctx.Pane)
		if p == nil {
			return nil
		}
		return m.lists.Step(ev.String(), p, down)
	}
}

// move adapts a single-shot list operation to a route handler.
func (m *Manager) move(op func(listnav.Pane) tea.Cmd) router.Handler {
	return func(_ *router.Event, ctx router.Context) tea.Cmd {
		p := m.pane(ctx.Pane)
		if p == nil {
			return nil
		}
		return op(p)
	}
}

func (m *Manager) filterPane(ctx router.Context) element.Pane {
	if pane := element.Pane(m.machine.Value(navstate.KeyPane)); pane != element.PaneNone {
		return pane
	}
	return ctx.Pane
}

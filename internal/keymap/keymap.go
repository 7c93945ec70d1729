package keymap

// Binding contexts, one per group in the help overlay.
const (
	ContextGlobal   = "global"
	ContextList     = "list"
	ContextFolders  = "folders"
	ContextFiles    = "files"
	ContextHeader   = "header"
	ContextFilter   = "filter"
	ContextMetadata = "metadata"
	ContextEdit     = "edit"
)

// Binding maps keys to an action in one context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains every key binding, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionSwitchPane, []string{"tab"}, "Next pane", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionCopyPath, []string{"y"}, "Copy path", ContextGlobal},
	{ActionOpen, []string{"o"}, "Open with default application", ContextGlobal},
	{ActionUndo, []string{"ctrl+z"}, "Undo tag edit", ContextGlobal},
	{ActionRedo, []string{"ctrl+y"}, "Redo tag edit", ContextGlobal},
	{ActionReload, []string{"r"}, "Reload from disk", ContextGlobal},

	// Lists
	{ActionMoveUp, []string{"up", "k"}, "Move up", ContextList},
	{ActionMoveDown, []string{"down", "j"}, "Move down", ContextList},
	{ActionPageUp, []string{"pgup"}, "Page up", ContextList},
	{ActionPageDown, []string{"pgdown"}, "Page down", ContextList},
	{ActionJumpStart, []string{"home", "g"}, "First item", ContextList},
	{ActionJumpEnd, []string{"end", "G"}, "Last item", ContextList},
	{ActionFilter, []string{"/"}, "Filter", ContextList},

	// Folder tree
	{ActionActivate, []string{"enter"}, "Expand/collapse", ContextFolders},
	{ActionCollapse, []string{"left", "h"}, "Collapse/parent", ContextFolders},
	{ActionExpand, []string{"right", "l"}, "Expand/first child", ContextFolders},

	// File list
	{ActionActivate, []string{"enter"}, "Load tags", ContextFiles},
	{ActionRename, []string{"f2"}, "Rename file", ContextFiles},

	// Header icons
	{ActionIconLeft, []string{"left"}, "Previous icon", ContextHeader},
	{ActionIconRight, []string{"right"}, "Next icon", ContextHeader},
	{ActionIconPress, []string{"enter", "space"}, "Activate icon", ContextHeader},
	{ActionToList, []string{"down", "esc"}, "Back to list", ContextHeader},

	// Filter input
	{ActionCommit, []string{"enter"}, "Keep filter", ContextFilter},
	{ActionCancel, []string{"esc"}, "Clear filter", ContextFilter},

	// Metadata form
	{ActionMoveUp, []string{"up", "k"}, "Previous field", ContextMetadata},
	{ActionMoveDown, []string{"down", "j"}, "Next field", ContextMetadata},
	{ActionEditField, []string{"enter"}, "Edit field", ContextMetadata},

	// Editing a field or file name
	{ActionCommit, []string{"enter"}, "Save", ContextEdit},
	{ActionCancel, []string{"esc"}, "Revert", ContextEdit},
	{ActionAcceptSuggestion, []string{"ctrl+y"}, "Accept suggestion", ContextEdit},
	{ActionNameFromTags, []string{"ctrl+t"}, "Name file from tags", ContextEdit},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// Keys returns the keys bound to action in context.
func Keys(context string, action Action) []string {
	for _, b := range All {
		if b.Context == context && b.Action == action {
			return b.Keys
		}
	}
	return nil
}

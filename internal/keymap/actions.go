// Package keymap defines the key bindings of the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionSwitchPane Action = "switch_pane"
	ActionCopyPath   Action = "copy_path"
	ActionOpen       Action = "open"
	ActionUndo       Action = "undo"
	ActionRedo       Action = "redo"
	ActionReload     Action = "reload"

	// List navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionActivate  Action = "activate" // enter - expand folder / load file
	ActionCollapse  Action = "collapse"
	ActionExpand    Action = "expand"
	ActionFilter    Action = "filter"
	ActionRename    Action = "rename"

	// Header icons
	ActionIconLeft  Action = "icon_left"
	ActionIconRight Action = "icon_right"
	ActionIconPress Action = "icon_press"
	ActionToList    Action = "to_list"

	// Text entry (filter, field edit, rename)
	ActionCommit           Action = "commit"
	ActionCancel           Action = "cancel"
	ActionAcceptSuggestion Action = "accept_suggestion"
	ActionEditField        Action = "edit_field"
	ActionNameFromTags     Action = "name_from_tags"
)

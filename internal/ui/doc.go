// Package ui provides the interactive app picker.
//
// When a per-app command runs without arguments and no default applies,
// san can ask which environments to use instead of failing with "no apps
// selected". The picker is a fuzzy-filtered multi-select list rendered
// with bubbletea on stderr, so stdout stays clean for command output.
//
// Keys:
//
//	↑/↓      move
//	space    toggle the app under the cursor
//	ctrl+a   toggle every visible app
//	enter    confirm (the app under the cursor when nothing is toggled)
//	esc      clear the filter, or cancel when it is empty
//
// [CanPrompt] reports whether stdin is a terminal; callers only offer the
// picker when it is.
package ui

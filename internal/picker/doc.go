// Package picker implements the path picking session behind the create-new
// commands.
//
// A Picker drives two host widgets. The Selector lists destination folders
// while the session is in MenuSelecting mode; the TextField takes the path
// to create once a folder has been chosen or autocompletion has started.
//
//	MenuSelecting --accept folder--> FreeText --accept value--> Accepted
//	      |                            ^
//	      +--------autocomplete--------+
//	any non-terminal mode --hide/accept nothing--> Dismissed
//
// The picker never blocks the host. The menu is loaded through the Async
// hook and dropped if it arrives after the session moved on. Values the
// picker writes into the TextField are counted so that the host's echoing
// change notifications are not mistaken for user edits, which would reset
// completion cycling.
//
// Hosts implement Selector and TextField; package pickertest provides fakes.
package picker

// Package term draws uiflow panels on a tcell screen.
//
// Surface wraps a tcell.Screen behind a mutex so that the event loop and
// log hooks may share it. Renderer draws every element of a panel as a
// box, highlighting the focused element, the element under the mouse and
// pointer captors.
package term

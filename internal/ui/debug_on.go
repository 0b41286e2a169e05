//go:build uiflowdebug

package ui

// DebugChecks enables hot-path assertions. Build with -tags uiflowdebug.
const DebugChecks = true

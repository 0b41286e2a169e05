// Package input turns decoded platform input into engine events.
//
// A Sample is one input occurrence that has already been decoded: a button
// change, a move, a wheel tick, a keystroke. NewEvent wraps a sample into a
// pooled *ui.Event of the matching kind. Translator produces samples from
// tcell terminal events, diffing tcell's button masks into separate down and
// up samples. ClickDetector counts repeated clicks for the Click events a
// panel synthesizes.
package input

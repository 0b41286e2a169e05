// Package key defines keyboard identities shared by the input translator and
// the event payloads: the Key code, the Modifier bitmask, and Stroke, the
// decoded keystroke carried by keyboard events.
package key

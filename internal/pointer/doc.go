// Package pointer keeps per-pointer bookkeeping for a set of panels.
//
// Store records which buttons each pointer holds, where each pointer was
// last seen per context, and which element captured it. Tracker separates
// the element a pointer is claimed to be over during the current input
// cycle from the committed element that routing uses, and on Commit
// synthesizes the over/out and enter/leave events that move the pointer
// from one to the other.
//
// Pointer ids are small integers: the mouse is MousePointerID, touches and
// pen contacts occupy fixed ranges below MaxPointers.
package pointer

// Package ui holds the element tree and event model that the dispatcher
// routes over.
//
// An Element owns two ordered callback lists, one per propagation phase.
// The lists may be mutated from inside their own invocation: a pass always
// iterates the list as it was when the pass began, callbacks removed during
// the pass stop running at once, and callbacks added during the pass run
// from the next pass on.
//
// Events are pooled. AcquireEvent returns a cleared event whose propagation
// capabilities come from its Kind, and Dispose returns it once the last
// reference is released. Kinds are a closed set registered at init time;
// each carries a Category used as a cheap interest filter and the Routing
// strategy used to find its target.
//
// Nothing in this package is safe for concurrent use. Everything runs on the
// goroutine that receives input.
//
// Building with the uiflowdebug tag enables assertions on released events
// and on tree mutation during dispatch.
package ui

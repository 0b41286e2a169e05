// Package dispatch drives events through an element tree.
//
// A Dispatcher resolves the target of an event from the routing strategy of
// its kind, builds the propagation path, and walks it in two phases:
// trickle-down from the outermost interested ancestor to the target, then
// bubble-up back out. At each node the node's callbacks for the phase run
// first, then the node's own behavior. The target and any composite root on
// the path wrap their bubble handling with the default actions of their
// behavior.
//
// Events that neither bubble nor trickle are delivered to exactly one node,
// folding both phases.
//
// With legacy mouse events enabled, pointer down, up, move and cancel events
// of the primary pointer carry a mouse-shaped shadow event that is delivered
// right after the primary at every node interested in mouse events. The two
// events stop independently; the shadow's stop state is merged back into the
// primary when the dispatch ends.
//
// Basic usage:
//
//	d := dispatch.New(dispatch.DefaultConfig())
//	evt := ui.AcquireEvent(ui.KindKeyDown)
//	defer evt.Dispose()
//	if err := d.Dispatch(evt, panel); err != nil {
//	    log.Printf("dispatch failed: %v", err)
//	}
//
// A Dispatcher keeps no state between calls apart from configuration and
// optional metrics, and like the rest of the engine it is meant to be used
// from a single goroutine.
package dispatch

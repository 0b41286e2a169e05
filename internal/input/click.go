package input

import (
	"math"
	"time"

	"github.com/dshills/uiflow/internal/ui"
)

// Default click detection thresholds.
const (
	DefaultDoubleClickTime     = 400 * time.Millisecond
	DefaultDoubleClickDistance = 4
)

// ClickDetector counts clicks in a sequence for double and triple click
// detection. The count wraps back to 1 after 3.
type ClickDetector struct {
	maxTime     time.Duration
	maxDistance float64

	lastPos    ui.Vec2
	lastTime   time.Time
	lastButton ui.Button
	lastCount  int
}

// NewClickDetector creates a detector with the given thresholds. Zero values
// select the defaults.
func NewClickDetector(maxTime time.Duration, maxDistance float64) *ClickDetector {
	if maxTime <= 0 {
		maxTime = DefaultDoubleClickTime
	}
	if maxDistance <= 0 {
		maxDistance = DefaultDoubleClickDistance
	}
	return &ClickDetector{maxTime: maxTime, maxDistance: maxDistance}
}

// Record registers a click of button at pos and returns its count in the
// current sequence. A zero timestamp is replaced by time.Now.
func (d *ClickDetector) Record(button ui.Button, pos ui.Vec2, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if d.continues(button, pos, timestamp) {
		d.lastCount++
		if d.lastCount > 3 {
			d.lastCount = 1
		}
	} else {
		d.lastCount = 1
	}

	d.lastPos = pos
	d.lastTime = timestamp
	d.lastButton = button
	return d.lastCount
}

func (d *ClickDetector) continues(button ui.Button, pos ui.Vec2, timestamp time.Time) bool {
	if d.lastCount == 0 || d.lastTime.IsZero() || button != d.lastButton {
		return false
	}

	// Clock skew starts a new sequence.
	elapsed := timestamp.Sub(d.lastTime)
	if elapsed < 0 || elapsed > d.maxTime {
		return false
	}

	// Manhattan distance, as for terminal cells.
	dist := math.Abs(pos.X-d.lastPos.X) + math.Abs(pos.Y-d.lastPos.Y)
	return dist <= d.maxDistance
}

// Reset clears the click sequence.
func (d *ClickDetector) Reset() {
	*d = ClickDetector{maxTime: d.maxTime, maxDistance: d.maxDistance}
}

// LastCount returns the count of the last recorded click.
func (d *ClickDetector) LastCount() int {
	return d.lastCount
}

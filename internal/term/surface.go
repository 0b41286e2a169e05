package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Surface is a thread-safe drawing surface backed by a tcell screen.
type Surface struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewSurface wraps an existing screen, typically a simulation screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// NewTerminalSurface creates a surface on the controlling terminal.
func NewTerminalSurface() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewSurface(screen), nil
}

// Init initializes the screen and enables mouse and focus reporting.
func (s *Surface) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	s.screen.EnableFocus()
	s.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (s *Surface) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

// Screen returns the underlying screen.
func (s *Surface) Screen() tcell.Screen { return s.screen }

// Size returns the screen size in cells.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

// PollEvent waits for the next terminal event. It returns nil after
// Shutdown.
func (s *Surface) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues a synthetic event.
func (s *Surface) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Clear clears the screen.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
}

// Show flushes pending drawing to the display.
func (s *Surface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Show()
}

// Sync redraws the whole display, used after resizes.
func (s *Surface) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Sync()
}

// SetCell sets one cell. Positions outside the screen are ignored.
func (s *Surface) SetCell(x, y int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCell(x, y, r, style)
}

func (s *Surface) setCell(x, y int, r rune, style tcell.Style) {
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

// Cell returns the rune and style at a position.
func (s *Surface) Cell(x, y int) (rune, tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mainc, _, style, _ := s.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return mainc, style
}

// Fill fills the rectangle [x0,x1)×[y0,y1) with r.
func (s *Surface) Fill(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.setCell(x, y, r, style)
		}
	}
}

// DrawText writes text starting at (x, y), clipped to maxX. It returns the
// column after the last cell written. Each grapheme cluster is drawn with
// its first rune.
func (s *Surface) DrawText(x, y, maxX int, text string, style tcell.Style) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if w == 0 || len(runes) == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		if x >= 0 && y >= 0 {
			s.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x
}

// Box draws a single-line border around [x0,x1)×[y0,y1).
func (s *Surface) Box(x0, y0, x1, y1 int, style tcell.Style) {
	if x1-x0 < 2 || y1-y0 < 2 {
		s.Fill(x0, y0, x1, y1, ' ', style)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for x := x0 + 1; x < x1-1; x++ {
		s.setCell(x, y0, tcell.RuneHLine, style)
		s.setCell(x, y1-1, tcell.RuneHLine, style)
	}
	for y := y0 + 1; y < y1-1; y++ {
		s.setCell(x0, y, tcell.RuneVLine, style)
		s.setCell(x1-1, y, tcell.RuneVLine, style)
	}
	s.setCell(x0, y0, tcell.RuneULCorner, style)
	s.setCell(x1-1, y0, tcell.RuneURCorner, style)
	s.setCell(x0, y1-1, tcell.RuneLLCorner, style)
	s.setCell(x1-1, y1-1, tcell.RuneLRCorner, style)
}

package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/uiflow/internal/panel"
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// Theme holds the styles used by Renderer.
type Theme struct {
	Background tcell.Style
	Box        tcell.Style
	Focused    tcell.Style
	Hover      tcell.Style
	Captured   tcell.Style
	Disabled   tcell.Style
	Status     tcell.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Background: base,
		Box:        base.Foreground(tcell.ColorSilver),
		Focused:    base.Foreground(tcell.ColorYellow).Bold(true),
		Hover:      base.Foreground(tcell.ColorAqua),
		Captured:   base.Foreground(tcell.ColorFuchsia).Bold(true),
		Disabled:   base.Foreground(tcell.ColorGray).Dim(true),
		Status:     base.Reverse(true),
	}
}

// Renderer draws panels onto a surface.
type Renderer struct {
	surface *Surface
	theme   Theme
	status  string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTheme replaces the default theme.
func WithTheme(t Theme) RendererOption {
	return func(r *Renderer) {
		r.theme = t
	}
}

// NewRenderer creates a renderer drawing on s.
func NewRenderer(s *Surface, opts ...RendererOption) *Renderer {
	r := &Renderer{surface: s, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetStatus sets the text of the bottom status line.
func (r *Renderer) SetStatus(text string) { r.status = text }

// Status returns the status line text.
func (r *Renderer) Status() string { return r.status }

// Draw redraws p and shows the result. The root fills the screen and is
// not boxed; every other element is drawn as a labeled box over its
// parent.
func (r *Renderer) Draw(p *panel.Panel) {
	w, h := r.surface.Size()
	r.surface.Fill(0, 0, w, h, ' ', r.theme.Background)

	root := p.Root()
	for _, child := range root.Children() {
		r.drawElement(p, child)
	}

	if r.status != "" && h > 0 {
		r.surface.Fill(0, h-1, w, h, ' ', r.theme.Status)
		r.surface.DrawText(0, h-1, w, r.status, r.theme.Status)
	}
	r.surface.Show()
}

func (r *Renderer) drawElement(p *panel.Panel, el *ui.Element) {
	x0, y0, x1, y1 := cells(el.WorldBounds())
	style := r.styleFor(p, el)

	r.surface.Box(x0, y0, x1, y1, style)
	if x1-x0 > 2 {
		r.surface.DrawText(x0+1, y0, x1-1, el.Name(), style)
	}

	for _, child := range el.Children() {
		r.drawElement(p, child)
	}
}

func (r *Renderer) styleFor(p *panel.Panel, el *ui.Element) tcell.Style {
	switch {
	case p.HasPointerCapture(pointer.MousePointerID, el):
		return r.theme.Captured
	case p.FocusedElement() == el:
		return r.theme.Focused
	case p.Tracker().TopElement(pointer.MousePointerID) == el:
		return r.theme.Hover
	case !el.EnabledInHierarchy():
		return r.theme.Disabled
	default:
		return r.theme.Box
	}
}

// cells converts a rect to the cell range it covers.
func cells(rect ui.Rect) (x0, y0, x1, y1 int) {
	return int(math.Floor(rect.Min.X)), int(math.Floor(rect.Min.Y)),
		int(math.Ceil(rect.Max.X)), int(math.Ceil(rect.Max.Y))
}

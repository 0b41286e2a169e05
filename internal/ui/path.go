package ui

// maxPooledPaths bounds the path free list. Nested dispatches each hold one.
const maxPooledPaths = 32

// PropagationPath is the filtered route of one dispatch. Both views hold the
// same nodes: BubbleUp runs target to root and TrickleDown root to target.
type PropagationPath struct {
	bubble  []*Element
	trickle []*Element
	target  *Element
}

var freePaths []*PropagationPath

// BuildPath computes the route for an event of categories cats aimed at
// target. The target is on the path when it handles one of cats. Ancestors
// are on the path when they handle one of cats or are composite roots.
//
// When neither the target nor any ancestor handles cats the returned path is
// empty and no ancestor is visited.
func BuildPath(target *Element, cats Category) *PropagationPath {
	p := acquirePath()
	p.target = target
	if target == nil {
		return p
	}

	if target.HasSelfInterest(cats) {
		p.bubble = append(p.bubble, target)
	}
	if target.HasParentInterest(cats) {
		for a := target.parent; a != nil; a = a.parent {
			if a.HasSelfInterest(cats) || a.compositeRoot {
				p.bubble = append(p.bubble, a)
			}
		}
	}

	for i := len(p.bubble) - 1; i >= 0; i-- {
		p.trickle = append(p.trickle, p.bubble[i])
	}
	return p
}

// SingleNodePath returns a path holding only el, used when an active capture
// restricts traversal to the captor.
func SingleNodePath(el *Element) *PropagationPath {
	p := acquirePath()
	p.target = el
	if el != nil {
		p.bubble = append(p.bubble, el)
		p.trickle = append(p.trickle, el)
	}
	return p
}

// Target returns the element the path was built for.
func (p *PropagationPath) Target() *Element { return p.target }

// TrickleDown returns the nodes from the outermost ancestor to the target.
func (p *PropagationPath) TrickleDown() []*Element { return p.trickle }

// BubbleUp returns the nodes from the target to the outermost ancestor.
func (p *PropagationPath) BubbleUp() []*Element { return p.bubble }

// Len returns the number of nodes on the path.
func (p *PropagationPath) Len() int { return len(p.bubble) }

// Contains reports whether el is on the path.
func (p *PropagationPath) Contains(el *Element) bool {
	for _, n := range p.bubble {
		if n == el {
			return true
		}
	}
	return false
}

// Release returns the path to the pool. It must not be used afterwards.
func (p *PropagationPath) Release() {
	for i := range p.bubble {
		p.bubble[i] = nil
	}
	for i := range p.trickle {
		p.trickle[i] = nil
	}
	p.bubble = p.bubble[:0]
	p.trickle = p.trickle[:0]
	p.target = nil
	if len(freePaths) < maxPooledPaths {
		freePaths = append(freePaths, p)
	}
}

func acquirePath() *PropagationPath {
	if n := len(freePaths); n > 0 {
		p := freePaths[n-1]
		freePaths[n-1] = nil
		freePaths = freePaths[:n-1]
		return p
	}
	return &PropagationPath{}
}

package overlay

import (
	"slices"
	"sync"
)

// Node is a root visual element mounted on a Surface. Render draws the node on
// top of background, which already contains every node mounted before it.
type Node interface {
	NodeID() string
	Render(background string, width, height int) string
}

// Surface is the top-level mount point. Nodes are drawn in append order, so
// later nodes stack above earlier ones.
type Surface struct {
	mu    sync.Mutex
	nodes []Node
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Append mounts n above every node already on the surface.
func (s *Surface) Append(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, n)
}

// Remove unmounts n. It reports whether n was mounted.
func (s *Surface) Remove(n Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := n.NodeID()
	i := slices.IndexFunc(s.nodes, func(m Node) bool { return m.NodeID() == id })
	if i < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	return true
}

// Len returns the number of mounted nodes.
func (s *Surface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// Contains reports whether a node with the given id is mounted.
func (s *Surface) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.nodes, func(n Node) bool { return n.NodeID() == id })
}

// Compose renders every mounted node over background.
func (s *Surface) Compose(background string, width, height int) string {
	s.mu.Lock()
	nodes := slices.Clone(s.nodes)
	s.mu.Unlock()

	out := background
	for _, n := range nodes {
		out = n.Render(out, width, height)
	}
	return out
}

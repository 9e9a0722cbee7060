package biome

import (
	"slices"

	"github.com/google/uuid"
)

// Biome is one reply-thread cluster: a flat, ordered arena of entities.
// entities[0], when present, is conventionally the root of the displayed thread.
// Order is exactly the construction order; nothing is sorted or deduplicated.
type Biome struct {
	id       string
	entities []Entity

	// parents[i] is the index of i's resolved parent, or -1.
	parents []int
	// latest maps an id to the last index holding it.
	latest map[string]int
}

// ThreadNode is a node of the reconstructed reply tree.
type ThreadNode struct {
	Index    int
	Entity   Entity
	Children []*ThreadNode
}

// NewBiome wraps entities into a Biome. Parent links are resolved once here:
// an entity's parent is the most recent earlier entity whose ID matches its
// ParentID. Forward and dangling references stay unresolved.
func NewBiome(entities []Entity) *Biome {
	b := &Biome{
		id:       uuid.NewString(),
		entities: slices.Clone(entities),
		parents:  make([]int, len(entities)),
		latest:   make(map[string]int, len(entities)),
	}
	for i, e := range b.entities {
		b.parents[i] = -1
		if e.ParentID != "" {
			if j, ok := b.latest[e.ParentID]; ok {
				b.parents[i] = j
			}
		}
		b.latest[e.ID] = i
	}
	return b
}

// ID returns the opaque identifier generated at construction.
func (b *Biome) ID() string { return b.id }

// Len returns the number of entities.
func (b *Biome) Len() int { return len(b.entities) }

// Entities returns a copy of the entity sequence in construction order.
func (b *Biome) Entities() []Entity { return slices.Clone(b.entities) }

// At returns the entity at index i. It panics if i is out of range.
func (b *Biome) At(i int) Entity { return b.entities[i] }

// Root returns the first entity.
func (b *Biome) Root() (Entity, bool) {
	if len(b.entities) == 0 {
		return Entity{}, false
	}
	return b.entities[0], true
}

// IndexOf returns the last index holding id.
func (b *Biome) IndexOf(id string) (int, bool) {
	i, ok := b.latest[id]
	return i, ok
}

// ParentIndex returns the index of the resolved parent of entity i, or -1.
func (b *Biome) ParentIndex(i int) int {
	if i < 0 || i >= len(b.parents) {
		return -1
	}
	return b.parents[i]
}

// Parent returns the resolved parent of entity i.
func (b *Biome) Parent(i int) (Entity, bool) {
	j := b.ParentIndex(i)
	if j < 0 {
		return Entity{}, false
	}
	return b.entities[j], true
}

// Children returns the indices whose resolved parent is i, in sequence order.
func (b *Biome) Children(i int) []int {
	var out []int
	for k := i + 1; k < len(b.parents); k++ {
		if b.parents[k] == i {
			out = append(out, k)
		}
	}
	return out
}

// Depth returns the number of resolved ancestors of entity i.
func (b *Biome) Depth(i int) int {
	depth := 0
	for j := b.ParentIndex(i); j >= 0; j = b.parents[j] {
		depth++
	}
	return depth
}

// Tree rebuilds the nested reply tree. Entities without a resolved parent are
// roots; roots and children keep sequence order.
func (b *Biome) Tree() []*ThreadNode {
	nodes := make([]*ThreadNode, len(b.entities))
	for i, e := range b.entities {
		nodes[i] = &ThreadNode{Index: i, Entity: e}
	}

	var roots []*ThreadNode
	for i, n := range nodes {
		if p := b.parents[i]; p >= 0 {
			nodes[p].Children = append(nodes[p].Children, n)
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

// Walk visits the reply tree depth-first in pre-order. Returning false from fn stops the walk.
func (b *Biome) Walk(fn func(index, depth int, e Entity) bool) {
	var visit func(n *ThreadNode, depth int) bool
	visit = func(n *ThreadNode, depth int) bool {
		if !fn(n.Index, depth, n.Entity) {
			return false
		}
		for _, c := range n.Children {
			if !visit(c, depth+1) {
				return false
			}
		}
		return true
	}

	for _, root := range b.Tree() {
		if !visit(root, 0) {
			return
		}
	}
}

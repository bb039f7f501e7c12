package hosting

import (
	"sync/atomic"

	"github.com/contre95/musicrescue/src/music"
)

// Catalog holds the tree served by the browser. Trees are never mutated once
// published; a re-index publishes a new one.
type Catalog struct {
	tree atomic.Pointer[music.MusicTree]
}

// NewCatalog creates a catalog serving tree.
func NewCatalog(tree *music.MusicTree) *Catalog {
	c := &Catalog{}
	c.Set(tree)
	return c
}

// Tree returns the currently published tree.
func (c *Catalog) Tree() *music.MusicTree {
	return c.tree.Load()
}

// Set publishes a new tree.
func (c *Catalog) Set(tree *music.MusicTree) {
	c.tree.Store(tree)
}

package project

// Container is an output container under construction: either keyed
// (map[string]any) or a sequence ([]any). A nested sequence remembers the
// slot it was published to so that growth stays visible to its parent.
type Container struct {
	keyed map[string]any
	items []any
	seq   bool

	parent *Container
	key    string
	index  int
}

// NewKeyed returns an empty keyed container.
func NewKeyed() *Container { return &Container{keyed: map[string]any{}} }

// NewSequence returns an empty sequence with room for n elements.
func NewSequence(n int) *Container { return &Container{seq: true, items: make([]any, 0, n)} }

// IsSequence reports which variant c is.
func (c *Container) IsSequence() bool { return c.seq }

// Value returns the container as map[string]any or []any.
func (c *Container) Value() any {
	if c.seq {
		return c.items
	}
	return c.keyed
}

// Len returns the number of keys or slots.
func (c *Container) Len() int {
	if c.seq {
		return len(c.items)
	}
	return len(c.keyed)
}

// SetKeyed inserts or overwrites v at key.
func (c *Container) SetKeyed(key string, v any) { c.keyed[key] = v }

// SetIndexed writes v at index i, first extending the sequence with nil
// slots until it has i+1 elements.
func (c *Container) SetIndexed(i int, v any) {
	if i >= len(c.items) {
		for len(c.items) <= i {
			c.items = append(c.items, nil)
		}
		c.publish()
	}
	c.items[i] = v
}

// Merge copies every member of m into a keyed container.
func (c *Container) Merge(m map[string]any) {
	for k, v := range m {
		c.keyed[k] = v
	}
}

// set writes v to the slot s in c.
func (c *Container) set(s slot, v any) {
	if c.seq {
		c.SetIndexed(s.index, v)
		return
	}
	c.SetKeyed(s.key, v)
}

// attach writes child into slot s of c and records the slot on child.
func (c *Container) attach(s slot, child *Container) {
	child.parent, child.key, child.index = c, s.key, s.index
	c.set(s, child.Value())
}

// publish rewrites the parent's slot with the current slice header.
func (c *Container) publish() {
	if c.parent == nil {
		return
	}
	if c.parent.seq {
		c.parent.items[c.index] = c.items
		return
	}
	c.parent.keyed[c.key] = c.items
}

// slot addresses one position in a container: a key or an index.
type slot struct {
	key   string
	index int
}

func keySlot(k string) slot { return slot{key: k} }
func indexSlot(i int) slot  { return slot{index: i} }

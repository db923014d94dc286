package document

// Materialize converts the subtree rooted at n into native containers:
// map[string]any for objects, []any for arrays and the scalar value
// otherwise. No schema is consulted; every member is copied.
func (n *Node) Materialize() any {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindObject:
		return n.materializeObject()
	case KindArray:
		return n.materializeArray()
	default:
		return n.Value()
	}
}

// MaterializeObject is Materialize for object nodes; it returns nil for any
// other kind.
func (n *Node) MaterializeObject() map[string]any {
	if !n.IsObject() {
		return nil
	}
	return n.materializeObject()
}

func (n *Node) materializeObject() map[string]any {
	m := make(map[string]any, len(n.keys))
	for i, k := range n.keys {
		m[k] = n.elems[i].Materialize()
	}
	return m
}

func (n *Node) materializeArray() []any {
	out := make([]any, len(n.elems))
	for i, e := range n.elems {
		out[i] = e.Materialize()
	}
	return out
}

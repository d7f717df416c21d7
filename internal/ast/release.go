package ast

// Release tears down the tree rooted at n: every owned node is visited
// children first, detached from its parent and marked released. onRelease,
// when not nil, observes each node exactly once.
//
// Release returns the number of nodes released by this call. Releasing an
// already released node is a no-op returning 0.
func Release(n Node, onRelease func(Node)) int {
	if n == nil || n.base().released {
		return 0
	}
	count := 0
	for _, c := range Children(n) {
		count += Release(c, onRelease)
	}
	b := n.base()
	b.released = true
	b.parent = nil
	if onRelease != nil {
		onRelease(n)
	}
	return count + 1
}

// Released reports whether Release has already torn n down.
func Released(n Node) bool {
	return n != nil && n.base().released
}

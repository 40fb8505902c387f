package trie

import "sort"

// Node is one character position reachable from the root.
type Node struct {
	children map[rune]*Node
	count    int
}

// Count returns how many inserted words pass through the node.
func (n *Node) Count() int {
	return n.count
}

// Branching returns the number of distinct children.
func (n *Node) Branching() int {
	return len(n.children)
}

// Child returns the child reached by r.
func (n *Node) Child(r rune) (*Node, bool) {
	c, ok := n.children[r]
	return c, ok
}

// MaxChildCount returns the largest pass count among the children, or 0.
func (n *Node) MaxChildCount() int {
	best := 0
	for _, c := range n.children {
		if c.count > best {
			best = c.count
		}
	}
	return best
}

// ChildCount pairs a child's rune with its pass count.
type ChildCount struct {
	Rune  rune
	Count int
}

// Children returns the node's children sorted by descending count, then rune.
func (n *Node) Children() []ChildCount {
	out := make([]ChildCount, 0, len(n.children))
	for r, c := range n.children {
		out = append(out, ChildCount{Rune: r, Count: c.count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Rune < out[j].Rune
	})
	return out
}

func (n *Node) childOrCreate(r rune) *Node {
	if n.children == nil {
		n.children = make(map[rune]*Node)
	}
	c, ok := n.children[r]
	if !ok {
		c = &Node{}
		n.children[r] = c
	}
	return c
}

// Trie is a rune-keyed prefix tree counting words per node.
// Insert is not safe for concurrent use; lookups on a trie that is no
// longer being written to are.
type Trie struct {
	root *Node
}

// New creates an empty trie.
func New() *Trie {
	return &Trie{root: &Node{}}
}

// Insert adds one occurrence of word, incrementing every node on its path
// including the root.
func (t *Trie) Insert(word string) {
	n := t.root
	n.count++
	for _, r := range word {
		n = n.childOrCreate(r)
		n.count++
	}
}

// Root returns the root node.
func (t *Trie) Root() *Node {
	return t.root
}

// Len returns the number of inserted words.
func (t *Trie) Len() int {
	return t.root.count
}

// Lookup returns the node reached by prefix.
func (t *Trie) Lookup(prefix string) (*Node, bool) {
	n := t.root
	for _, r := range prefix {
		c, ok := n.children[r]
		if !ok {
			return nil, false
		}
		n = c
	}
	return n, true
}

// Size returns the number of nodes, root included.
func (t *Trie) Size() int {
	return countNodes(t.root)
}

func countNodes(n *Node) int {
	total := 1
	for _, c := range n.children {
		total += countNodes(c)
	}
	return total
}

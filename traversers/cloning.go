package traversers

import "github.com/reusee/phpedit/nodes"

// CloningVisitor replaces every node with a shallow clone and records the
// original of each clone. Traversing with it yields a tree that can be
// edited freely while the original stays intact.
type CloningVisitor struct {
	VisitorBase
	Origins nodes.Origins
}

func NewCloningVisitor() *CloningVisitor {
	return &CloningVisitor{
		Origins: make(nodes.Origins),
	}
}

func (c *CloningVisitor) EnterNode(n nodes.Node) Action {
	clone := nodes.CloneNode(n)
	c.Origins[clone] = n
	return Replace(clone)
}

// CloneTree returns a deep copy of ns and the clone-to-original mapping.
func CloneTree[T nodes.Node](ns []T) ([]T, nodes.Origins) {
	cloner := NewCloningVisitor()
	return Traverse(ns, cloner), cloner.Origins
}

package rawdoc

import "strings"

// Node is one element of a decoded tagged document. Children preserve
// document order; Text is the character data directly inside the element.
type Node struct {
	Tag      string
	Text     string
	Children []*Node
}

// localName strips any namespace qualifier a tag carries, either a
// prefix ("ns:Amount") or Clark notation ("{uri}Amount").
func localName(tag string) string {
	if i := strings.LastIndex(tag, "}"); i >= 0 {
		tag = tag[i+1:]
	}
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		tag = tag[i+1:]
	}
	return tag
}

// Find returns the first element named tag in document order, matching
// the node itself and all descendants at any depth. Namespace prefixes
// on either side are ignored.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	if localName(n.Tag) == localName(tag) {
		return n
	}
	for _, c := range n.Children {
		if hit := c.Find(tag); hit != nil {
			return hit
		}
	}
	return nil
}

// FindAll returns every element named tag in document order.
func (n *Node) FindAll(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	n.collect(localName(tag), &out)
	return out
}

func (n *Node) collect(tag string, out *[]*Node) {
	if localName(n.Tag) == tag {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		c.collect(tag, out)
	}
}

// FindText returns the trimmed text of the first element named tag,
// or "" when no such element exists.
func (n *Node) FindText(tag string) string {
	if hit := n.Find(tag); hit != nil {
		return strings.TrimSpace(hit.Text)
	}
	return ""
}

package router

import "strings"

// routeNode is a node in the static segment tree.
type routeNode struct {
	// segment is the path segment this node matches
	segment string

	// route is the route terminating at this node, if any
	route *Route

	// children are the static segment children
	children []*routeNode
}

// newRouteNode creates a new route node.
func newRouteNode(segment string) *routeNode {
	return &routeNode{
		segment: segment,
	}
}

// findChild finds a child node with an exact segment match.
func (n *routeNode) findChild(segment string) *routeNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a child node for the given segment.
func (n *routeNode) addChild(segment string) *routeNode {
	if child := n.findChild(segment); child != nil {
		return child
	}

	child := newRouteNode(segment)
	n.children = append(n.children, child)
	return child
}

// insertRoute walks (creating as needed) the nodes for path and returns the
// terminal node.
func (n *routeNode) insertRoute(path string) *routeNode {
	current := n
	for _, seg := range splitPath(path) {
		current = current.addChild(seg)
	}
	return current
}

// match finds the route terminating exactly at the given segments.
func (n *routeNode) match(segments []string) (*Route, bool) {
	current := n
	for _, seg := range segments {
		current = current.findChild(seg)
		if current == nil {
			return nil, false
		}
	}
	if current.route == nil {
		return nil, false
	}
	return current.route, true
}

// splitPath splits a path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// normalizePath returns the canonical form of path: one leading slash, no
// trailing slash.
func normalizePath(path string) string {
	return "/" + strings.Join(splitPath(path), "/")
}

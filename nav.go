package llmstxt

import "strings"

// NavKind identifies the variant of a NavNode.
type NavKind int

// NavNode variants.
const (
	NavPage NavKind = iota + 1
	NavGroup
)

// NavNode is one entry of a site navigation tree. A NavPage references a
// single page and may carry a title; a NavGroup is a titled, ordered list of
// child nodes.
type NavNode struct {
	Kind     NavKind
	Title    string
	Path     string
	Children []NavNode
}

// PageRef returns a NavPage node. Title may be empty.
func PageRef(title, path string) NavNode {
	return NavNode{Kind: NavPage, Title: title, Path: path}
}

// NamedGroup returns a NavGroup node.
func NamedGroup(name string, children ...NavNode) NavNode {
	return NavNode{Kind: NavGroup, Title: name, Children: children}
}

// NavTitle returns the title declared for path in the navigation tree. An
// untitled page inside a group takes the title of its nearest group.
// Returns an empty string if the page is absent or untitled at the top level.
func NavTitle(nav []NavNode, path string) string {
	return navTitle(nav, path, "")
}

func navTitle(nodes []NavNode, path, group string) string {
	for _, n := range nodes {
		switch n.Kind {
		case NavPage:
			if n.Path != path {
				continue
			}
			if n.Title != "" {
				return n.Title
			}
			if group != "" {
				return group
			}
		case NavGroup:
			if title := navTitle(n.Children, path, n.Title); title != "" {
				return title
			}
		}
	}
	return ""
}

// collectPages appends every page path under nodes to dst in depth-first order.
func collectPages(nodes []NavNode, dst []string) []string {
	for _, n := range nodes {
		switch n.Kind {
		case NavPage:
			if !isExternal(n.Path) {
				dst = append(dst, n.Path)
			}
		case NavGroup:
			dst = collectPages(n.Children, dst)
		}
	}
	return dst
}

// isExternal reports whether a nav path links outside the site.
func isExternal(p string) bool {
	return strings.Contains(p, "://") || strings.HasPrefix(p, "mailto:")
}

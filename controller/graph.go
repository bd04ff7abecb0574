package controller

import (
	"fmt"
	"strings"

	"github.com/zjrosen/membrane/component"
)

// DotGraph renders the containment tree rooted at root in Graphviz dot
// format. Components are labeled with their display name and visited at
// most once, so shared sub-components (a component registered under several
// parents) render as a single node.
func DotGraph(root *component.Component) string {
	var b strings.Builder
	b.WriteString("digraph membrane {\n  rankdir=TB;\n")

	visited := make(map[component.ID]bool)
	writeNodes(&b, root, visited)

	visited = make(map[component.ID]bool)
	writeEdges(&b, root, visited)

	b.WriteString("}\n")
	return b.String()
}

func writeNodes(b *strings.Builder, c *component.Component, visited map[component.ID]bool) {
	if visited[c.ID()] {
		return
	}
	visited[c.ID()] = true

	fmt.Fprintf(b, "  %q [label=%q];\n", c.ID().String(), DisplayName(c))

	subs, err := SubComponents(c)
	if err != nil {
		return
	}
	for _, sub := range subs {
		writeNodes(b, sub, visited)
	}
}

func writeEdges(b *strings.Builder, c *component.Component, visited map[component.ID]bool) {
	if visited[c.ID()] {
		return
	}
	visited[c.ID()] = true

	subs, err := SubComponents(c)
	if err != nil {
		return
	}
	for _, sub := range subs {
		fmt.Fprintf(b, "  %q -> %q;\n", c.ID().String(), sub.ID().String())
		writeEdges(b, sub, visited)
	}
}

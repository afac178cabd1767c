package files

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Node is a file or directory. Children of a directory are read once, the
// first time it is expanded.
type Node struct {
	Path     string
	Name     string
	IsDir    bool
	Expanded bool
	Children []*Node

	loaded bool
	ignore []string
}

// Entry is a visible node together with its depth below the root.
type Entry struct {
	Node  *Node
	Depth int
}

func NewNode(path string, ignore []string) *Node {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	return &Node{
		Path:   path,
		Name:   name,
		IsDir:  err == nil && info.IsDir(),
		ignore: ignore,
	}
}

func (n *Node) hidden(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(n.ignore, name)
}

// LoadChildren reads the directory listing unless it was read before.
// Directories sort before files, then names compare case-insensitively.
func (n *Node) LoadChildren() error {
	if !n.IsDir || n.loaded {
		return nil
	}

	entries, err := os.ReadDir(n.Path)
	if err != nil {
		return err
	}

	children := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		if n.hidden(entry.Name()) {
			continue
		}
		children = append(children, NewNode(filepath.Join(n.Path, entry.Name()), n.ignore))
	}

	slices.SortFunc(children, func(a, b *Node) int {
		switch {
		case a.IsDir && !b.IsDir:
			return -1
		case !a.IsDir && b.IsDir:
			return 1
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	n.Children = children
	n.loaded = true
	return nil
}

// Toggle expands a collapsed directory, loading it if needed, or collapses an
// expanded one. Files are left alone.
func (n *Node) Toggle() error {
	if !n.IsDir {
		return nil
	}
	if n.Expanded {
		n.Expanded = false
		return nil
	}
	if err := n.LoadChildren(); err != nil {
		return err
	}
	n.Expanded = true
	return nil
}

// Flatten lists the node and every node under an expanded directory, in display order.
func (n *Node) Flatten() []Entry {
	var out []Entry
	n.flatten(0, &out)
	return out
}

func (n *Node) flatten(depth int, out *[]Entry) {
	*out = append(*out, Entry{Node: n, Depth: depth})
	if !n.Expanded {
		return
	}
	for _, child := range n.Children {
		child.flatten(depth+1, out)
	}
}

// Files lists the visible files, in display order.
func (n *Node) Files() []*Node {
	var out []*Node
	for _, e := range n.Flatten() {
		if !e.Node.IsDir {
			out = append(out, e.Node)
		}
	}
	return out
}

func (n *Node) DisplayLines() []string {
	entries := n.Flatten()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.DisplayLine()
	}
	return lines
}

func (e Entry) DisplayLine() string {
	prefix := "  "
	if e.Node.IsDir {
		prefix = "+ "
		if e.Node.Expanded {
			prefix = "- "
		}
	}
	return strings.Repeat("  ", e.Depth) + prefix + e.Node.Name
}

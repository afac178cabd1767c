package files

// Explorer is the directory tree with a selected row.
type Explorer struct {
	Root     *Node
	Selected int
}

// NewExplorer opens dir as the root, already expanded.
func NewExplorer(dir string, ignore []string) (*Explorer, error) {
	root := NewNode(dir, ignore)
	if err := root.Toggle(); err != nil {
		return nil, err
	}
	return &Explorer{Root: root}, nil
}

func (e *Explorer) Entries() []Entry {
	return e.Root.Flatten()
}

func (e *Explorer) MoveUp() {
	if e.Selected > 0 {
		e.Selected--
	}
}

func (e *Explorer) MoveDown() {
	if e.Selected < len(e.Entries())-1 {
		e.Selected++
	}
}

// Selection returns the selected node.
func (e *Explorer) Selection() *Node {
	entries := e.Entries()
	e.Selected = max(0, min(e.Selected, len(entries)-1))
	return entries[e.Selected].Node
}

// Activate toggles the selected directory, or returns the selected file for opening.
// The root stays expanded.
func (e *Explorer) Activate() (*Node, error) {
	node := e.Selection()
	if node == e.Root {
		return nil, nil
	}
	if node.IsDir {
		return nil, node.Toggle()
	}
	return node, nil
}

// Collapse folds the selected directory, or the one containing the selected file.
func (e *Explorer) Collapse() {
	entries := e.Entries()
	sel := e.Selection()
	if sel.IsDir && sel.Expanded && sel != e.Root {
		sel.Expanded = false
		return
	}
	depth := entries[e.Selected].Depth
	for i := e.Selected - 1; i >= 0; i-- {
		if entries[i].Depth < depth {
			if entries[i].Node != e.Root {
				entries[i].Node.Expanded = false
			}
			e.Selected = i
			return
		}
	}
}

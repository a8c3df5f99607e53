package filters

import (
	"github.com/martinsuchenak/wmisweep/internal/log"
)

// Walk returns the fully qualified path of every namespace below root,
// depth-first: each namespace appears before its descendants, and a child's
// whole subtree appears before the next sibling. root itself is not
// included. With recurse false only the direct children are returned.
//
// Namespace containment is strictly hierarchical, so no cycle detection is
// needed. Namespaces that cannot be queried are skipped; the branch simply
// produces no children.
func Walk(store Store, root string, recurse bool) []string {
	var found []string

	// Explicit stack instead of call-stack recursion; namespace depth is
	// not under our control.
	stack := []string{root}
	for len(stack) > 0 {
		ns := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if ns != root {
			found = append(found, ns)
			if !recurse {
				continue
			}
		}

		children, err := store.ChildNamespaces(ns)
		if err != nil {
			// Unreadable namespaces are not an error for the walk.
			log.Debug("Skipping unreadable namespace", "namespace", ns, "error", err)
			continue
		}

		// Push in reverse so the pop order preserves sibling order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, ns+`\`+children[i])
		}
	}
	return found
}

package filters

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/martinsuchenak/wmisweep/internal/log"
	"github.com/martinsuchenak/wmisweep/internal/model"
)

// ErrDeclined is returned when the operator does not confirm a removal.
// The whole run stops there; the listing pass never runs after it.
var ErrDeclined = errors.New("removal declined by operator")

// Matches reports whether an event filter name satisfies the removal
// target: exact equality, or substring containment when like is set.
func Matches(filterName, target string, like bool) bool {
	if like {
		return strings.Contains(filterName, target)
	}
	return filterName == target
}

// Remover deletes matching __EventFilter instances from a single namespace
// after an interactive confirmation. The preview it prints and the set it
// deletes are the same list from one query; it never re-queries between
// confirmation and deletion.
type Remover struct {
	Store Store
	In    *bufio.Reader
	Out   io.Writer
}

// Run looks up event filters named name (substring match when like is set)
// in namespace, previews the matches, and deletes them all once the
// operator answers with the literal line "Y". Any other answer returns
// ErrDeclined. No matches is not an error: a warning is printed and the
// run continues.
func (r *Remover) Run(namespace, name string, like bool) error {
	instances, err := r.Store.EventFilterInstances(namespace)
	if err != nil {
		// Same silent-continue policy as the listing pass; a typo in
		// the namespace looks like an empty namespace.
		log.Debug("Removal lookup failed", "namespace", namespace, "error", err)
		instances = nil
	}

	var matches []model.EventFilter
	for _, f := range instances {
		if Matches(f.Name, name, like) {
			matches = append(matches, f)
		}
	}

	if len(matches) == 0 {
		fmt.Fprintf(r.Out, "No event filter named %q found in %s, check the spelling and try again\n", name, namespace)
		log.Warn("No matching event filter", "namespace", namespace, "name", name, "like", like)
		return nil
	}

	for _, f := range matches {
		printFilter(r.Out, f)
	}
	fmt.Fprintf(r.Out, "Remove %d event filter(s) from %s? Only \"Y\" confirms: ", len(matches), namespace)

	answer, err := ReadLine(r.In)
	if err != nil || answer != "Y" {
		return ErrDeclined
	}

	for _, f := range matches {
		if err := r.Store.DeleteEventFilter(namespace, f); err != nil {
			return fmt.Errorf("removing event filter %s: %w", f.Name, err)
		}
		log.Info("Removed event filter", "namespace", namespace, "name", f.Name)
	}
	return nil
}

// ReadLine reads one line from in, stripping the trailing newline and any
// carriage return. The confirmation check is against the remaining text
// exactly, case included.
func ReadLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

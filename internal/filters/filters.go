package filters

import (
	"fmt"
	"io"

	"github.com/martinsuchenak/wmisweep/internal/model"
)

// Store provides access to the WMI repository for namespace discovery,
// event filter enumeration, and removal.
type Store interface {
	// ChildNamespaces lists the direct child namespace names of parent.
	ChildNamespaces(parent string) ([]string, error)
	// EventFilters returns the four-field projection of every
	// __EventFilter instance in namespace.
	EventFilters(namespace string) ([]model.EventFilter, error)
	// EventFilterInstances returns the same projection with each
	// instance's object path set, for removal.
	EventFilterInstances(namespace string) ([]model.EventFilter, error)
	// RawEventFilters returns full instances, system properties included.
	RawEventFilters(namespace string) ([]model.RawFilter, error)
	// DeleteEventFilter deletes the instance identified by filter.Path.
	DeleteEventFilter(namespace string, filter model.EventFilter) error
}

func printFilter(w io.Writer, f model.EventFilter) {
	fmt.Fprintf(w, "Namespace:        %s\n", f.Namespace)
	fmt.Fprintf(w, "Name:             %s\n", f.Name)
	fmt.Fprintf(w, "Event namespace:  %s\n", f.EventNamespace)
	fmt.Fprintf(w, "Query:            %s\n", f.Query)
	fmt.Fprintln(w)
}

func printRawFilter(w io.Writer, f model.RawFilter) {
	fmt.Fprintf(w, "Namespace: %s\n", f.Namespace)
	for _, p := range f.Properties {
		fmt.Fprintf(w, "  %s = %s\n", p.Name, p.Value)
	}
	fmt.Fprintln(w)
}

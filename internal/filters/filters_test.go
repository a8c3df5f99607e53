package filters

import (
	"errors"
	"fmt"

	"github.com/martinsuchenak/wmisweep/internal/model"
)

var errDenied = errors.New("access denied")

// fakeStore is an in-memory Store backed by maps, with per-namespace
// failure injection.
type fakeStore struct {
	children  map[string][]string
	filters   map[string][]model.EventFilter
	raw       map[string][]model.RawFilter
	broken    map[string]bool
	deleted   []string
	deleteErr error
}

func (f *fakeStore) ChildNamespaces(parent string) ([]string, error) {
	if f.broken[parent] {
		return nil, errDenied
	}
	return f.children[parent], nil
}

func (f *fakeStore) EventFilters(namespace string) ([]model.EventFilter, error) {
	if f.broken[namespace] {
		return nil, errDenied
	}
	return f.filters[namespace], nil
}

func (f *fakeStore) EventFilterInstances(namespace string) ([]model.EventFilter, error) {
	if f.broken[namespace] {
		return nil, errDenied
	}
	out := make([]model.EventFilter, len(f.filters[namespace]))
	for i, flt := range f.filters[namespace] {
		flt.Path = fmt.Sprintf("__EventFilter.Name=%q", flt.Name)
		out[i] = flt
	}
	return out, nil
}

func (f *fakeStore) RawEventFilters(namespace string) ([]model.RawFilter, error) {
	if f.broken[namespace] {
		return nil, errDenied
	}
	return f.raw[namespace], nil
}

func (f *fakeStore) DeleteEventFilter(namespace string, filter model.EventFilter) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, filter.Path)
	return nil
}

//go:build !windows

package wmi

import (
	"errors"

	"github.com/martinsuchenak/wmisweep/internal/model"
)

var errUnsupported = errors.New("wmi: event filter access is only supported on windows")

// Store is a stub for non-Windows builds; every operation fails with a
// single unsupported error.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (*Store) ChildNamespaces(string) ([]string, error) {
	return nil, errUnsupported
}

func (*Store) EventFilters(string) ([]model.EventFilter, error) {
	return nil, errUnsupported
}

func (*Store) EventFilterInstances(string) ([]model.EventFilter, error) {
	return nil, errUnsupported
}

func (*Store) RawEventFilters(string) ([]model.RawFilter, error) {
	return nil, errUnsupported
}

func (*Store) DeleteEventFilter(string, model.EventFilter) error {
	return errUnsupported
}

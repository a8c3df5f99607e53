package filters

import (
	"io"

	"github.com/martinsuchenak/wmisweep/internal/log"
)

// Lister prints the __EventFilter instances of one namespace at a time,
// either as the four-field projection or as full raw instances.
type Lister struct {
	Store Store
	Out   io.Writer
	Raw   bool
}

// List enumerates namespace and prints its event filters, returning the
// number printed. A namespace that cannot be queried yields nothing; the
// error is logged and swallowed here so one bad namespace never aborts the
// listing pass.
func (l *Lister) List(namespace string) int {
	if l.Raw {
		raw, err := l.Store.RawEventFilters(namespace)
		if err != nil {
			log.Debug("Skipping namespace for raw listing", "namespace", namespace, "error", err)
			return 0
		}
		for _, f := range raw {
			printRawFilter(l.Out, f)
		}
		return len(raw)
	}

	found, err := l.Store.EventFilters(namespace)
	if err != nil {
		log.Debug("Skipping namespace for listing", "namespace", namespace, "error", err)
		return 0
	}
	for _, f := range found {
		printFilter(l.Out, f)
	}
	return len(found)
}

//go:build windows

package wmi

import (
	"fmt"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	wmiquery "github.com/yusufpapurcu/wmi"

	"github.com/martinsuchenak/wmisweep/internal/model"
)

// sFalse is the COM S_FALSE result, returned by CoInitializeEx when COM is
// already initialized on the calling thread.
const sFalse = 0x00000001

// queryClient maps WQL result sets onto structs. NULL provider values are
// projected to zero values rather than errors; __EventFilter allows NULL
// EventNamespace on older systems.
var queryClient = &wmiquery.Client{
	NonePtrZero:        true,
	AllowMissingFields: true,
}

// Store reads and deletes __EventFilter registrations in the local WMI
// repository. The zero value is ready to use; every operation opens its own
// connection so a failed namespace never poisons the next one.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// ChildNamespaces lists the direct child namespace names of parent.
func (s *Store) ChildNamespaces(parent string) ([]string, error) {
	var dst []struct{ Name string }
	if err := queryClient.Query("SELECT Name FROM __NAMESPACE", &dst, nil, parent); err != nil {
		return nil, fmt.Errorf("listing namespaces under %s: %w", parent, err)
	}
	names := make([]string, len(dst))
	for i := range dst {
		names[i] = dst[i].Name
	}
	return names, nil
}

// eventFilter mirrors the __EventFilter properties the projection uses.
type eventFilter struct {
	Name           string
	EventNamespace string
	Query          string
}

// EventFilters returns the four-field projection of every __EventFilter
// instance in namespace.
func (s *Store) EventFilters(namespace string) ([]model.EventFilter, error) {
	var dst []eventFilter
	if err := queryClient.Query("SELECT Name, EventNamespace, Query FROM __EventFilter", &dst, nil, namespace); err != nil {
		return nil, fmt.Errorf("querying __EventFilter in %s: %w", namespace, err)
	}
	out := make([]model.EventFilter, len(dst))
	for i, f := range dst {
		out[i] = model.EventFilter{
			Namespace:      namespace,
			Name:           f.Name,
			EventNamespace: f.EventNamespace,
			Query:          f.Query,
		}
	}
	return out, nil
}

// EventFilterInstances returns the projection of every __EventFilter instance
// in namespace with its __RELPATH set, so callers can delete exactly the
// instances they previewed.
func (s *Store) EventFilterInstances(namespace string) ([]model.EventFilter, error) {
	sess, err := connect(namespace)
	if err != nil {
		return nil, err
	}
	defer sess.close()

	var out []model.EventFilter
	err = sess.eachFilter(func(item *ole.IDispatch) error {
		relPath, err := objectRelPath(item)
		if err != nil {
			return err
		}
		out = append(out, model.EventFilter{
			Namespace:      namespace,
			Name:           stringProperty(item, "Name"),
			EventNamespace: stringProperty(item, "EventNamespace"),
			Query:          stringProperty(item, "Query"),
			Path:           relPath,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RawEventFilters returns every __EventFilter instance in namespace with all
// of its properties, system properties included, in provider order.
func (s *Store) RawEventFilters(namespace string) ([]model.RawFilter, error) {
	sess, err := connect(namespace)
	if err != nil {
		return nil, err
	}
	defer sess.close()

	var out []model.RawFilter
	err = sess.eachFilter(func(item *ole.IDispatch) error {
		raw := model.RawFilter{Namespace: namespace}
		// System properties first, then class properties, matching the
		// order the scripting API presents them.
		for _, set := range []string{"SystemProperties_", "Properties_"} {
			props, err := objectProperties(item, set)
			if err != nil {
				return err
			}
			raw.Properties = append(raw.Properties, props...)
		}
		out = append(out, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEventFilter deletes the instance identified by filter.Path from
// namespace. The path must come from a prior EventFilterInstances call.
func (s *Store) DeleteEventFilter(namespace string, filter model.EventFilter) error {
	if filter.Path == "" {
		return fmt.Errorf("event filter %s has no object path", filter.Name)
	}
	sess, err := connect(namespace)
	if err != nil {
		return err
	}
	defer sess.close()

	deleteRaw, err := oleutil.CallMethod(sess.services, "Delete", filter.Path)
	if err != nil {
		return fmt.Errorf("deleting %s in %s: %w", filter.Path, namespace, err)
	}
	deleteRaw.Clear()
	return nil
}

// session wraps an SWbemServices connection to a single namespace. COM is
// initialized per session on a locked OS thread, tolerating the S_FALSE
// already-initialized result, the same way the struct mapper does it.
type session struct {
	unknown  *ole.IUnknown
	locator  *ole.IDispatch
	services *ole.IDispatch
}

func connect(namespace string) (*session, error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleCode uintptr
		if oleErr, ok := err.(*ole.OleError); ok {
			oleCode = oleErr.Code()
		}
		if oleCode != ole.S_OK && oleCode != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("initializing COM: %w", err)
		}
	}

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("creating SWbemLocator: %w", err)
	}

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("querying IDispatch: %w", err)
	}

	servicesRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, namespace)
	if err != nil {
		locator.Release()
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("connecting to %s: %w", namespace, err)
	}

	return &session{
		unknown:  unknown,
		locator:  locator,
		services: servicesRaw.ToIDispatch(),
	}, nil
}

func (s *session) close() {
	s.services.Release()
	s.locator.Release()
	s.unknown.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

// eachFilter runs SELECT * FROM __EventFilter and invokes fn once per
// instance, releasing each COM object after its callback returns.
func (s *session) eachFilter(fn func(item *ole.IDispatch) error) error {
	resultRaw, err := oleutil.CallMethod(s.services, "ExecQuery", "SELECT * FROM __EventFilter")
	if err != nil {
		return fmt.Errorf("querying __EventFilter: %w", err)
	}
	result := resultRaw.ToIDispatch()
	defer resultRaw.Clear()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return fmt.Errorf("reading result count: %w", err)
	}
	count := int(countVar.Val)
	countVar.Clear()

	for i := 0; i < count; i++ {
		itemRaw, err := oleutil.CallMethod(result, "ItemIndex", i)
		if err != nil {
			return fmt.Errorf("fetching result %d: %w", i, err)
		}
		item := itemRaw.ToIDispatch()
		err = fn(item)
		itemRaw.Clear()
		if err != nil {
			return err
		}
	}
	return nil
}

// objectRelPath reads the server-relative object path off an instance via
// its Path_ property.
func objectRelPath(item *ole.IDispatch) (string, error) {
	pathRaw, err := oleutil.GetProperty(item, "Path_")
	if err != nil {
		return "", fmt.Errorf("reading Path_: %w", err)
	}
	defer pathRaw.Clear()

	relRaw, err := oleutil.GetProperty(pathRaw.ToIDispatch(), "RelPath")
	if err != nil {
		return "", fmt.Errorf("reading RelPath: %w", err)
	}
	defer relRaw.Clear()
	return relRaw.ToString(), nil
}

// objectProperties walks one of an instance's property sets
// (SystemProperties_ or Properties_) into name/value pairs.
func objectProperties(item *ole.IDispatch, set string) ([]model.Property, error) {
	setRaw, err := oleutil.GetProperty(item, set)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", set, err)
	}
	defer setRaw.Clear()

	var props []model.Property
	err = oleutil.ForEach(setRaw.ToIDispatch(), func(v *ole.VARIANT) error {
		prop := v.ToIDispatch()
		nameRaw, err := oleutil.GetProperty(prop, "Name")
		if err != nil {
			return err
		}
		name := nameRaw.ToString()
		nameRaw.Clear()

		valueRaw, err := oleutil.GetProperty(prop, "Value")
		if err != nil {
			return err
		}
		value := variantString(valueRaw)
		valueRaw.Clear()

		props = append(props, model.Property{Name: name, Value: value})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", set, err)
	}
	return props, nil
}

// stringProperty reads a string property off an instance, treating NULL and
// read failures as empty.
func stringProperty(item *ole.IDispatch, name string) string {
	v, err := oleutil.GetProperty(item, name)
	if err != nil {
		return ""
	}
	defer v.Clear()
	if v.VT == ole.VT_NULL {
		return ""
	}
	return v.ToString()
}

// variantString renders a variant for the raw listing. NULL renders empty,
// arrays render with Go's default slice formatting.
func variantString(v *ole.VARIANT) string {
	if v.VT == ole.VT_NULL {
		return ""
	}
	val := v.Value()
	if val == nil {
		return ""
	}
	return fmt.Sprint(val)
}

package filters

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martinsuchenak/wmisweep/internal/model"
)

func TestListerFormatsProjection(t *testing.T) {
	store := &fakeStore{
		filters: map[string][]model.EventFilter{
			`ROOT\A`: {
				{Namespace: `ROOT\A`, Name: "Foo", EventNamespace: `root\cimv2`, Query: "SELECT * FROM __InstanceModificationEvent"},
			},
		},
	}
	var out bytes.Buffer
	l := &Lister{Store: store, Out: &out}

	require.Equal(t, 1, l.List(`ROOT\A`))
	require.Contains(t, out.String(), `Namespace:        ROOT\A`)
	require.Contains(t, out.String(), "Name:             Foo")
	require.Contains(t, out.String(), `Event namespace:  root\cimv2`)
	require.Contains(t, out.String(), "Query:            SELECT * FROM __InstanceModificationEvent")
}

func TestListerRawKeepsSystemProperties(t *testing.T) {
	store := &fakeStore{
		raw: map[string][]model.RawFilter{
			`ROOT\A`: {
				{
					Namespace: `ROOT\A`,
					Properties: []model.Property{
						{Name: "__GENUS", Value: "2"},
						{Name: "__CLASS", Value: "__EventFilter"},
						{Name: "Name", Value: "Foo"},
					},
				},
			},
		},
	}
	var out bytes.Buffer
	l := &Lister{Store: store, Out: &out, Raw: true}

	require.Equal(t, 1, l.List(`ROOT\A`))
	require.Contains(t, out.String(), "__GENUS = 2")
	require.Contains(t, out.String(), "__CLASS = __EventFilter")
	require.Contains(t, out.String(), "Name = Foo")
}

func TestListerUnreadableNamespaceYieldsNothing(t *testing.T) {
	store := &fakeStore{broken: map[string]bool{`ROOT\Locked`: true}}
	var out bytes.Buffer
	l := &Lister{Store: store, Out: &out}

	require.Equal(t, 0, l.List(`ROOT\Locked`))
	require.Empty(t, out.String())
}

// Full-walk scenario: sub-namespace A holds Foo and Bar, B holds Baz; a
// sweep with no target namespace prints all three records.
func TestWalkAndListEverything(t *testing.T) {
	store := &fakeStore{
		children: map[string][]string{
			`ROOT`: {"A", "B"},
		},
		filters: map[string][]model.EventFilter{
			`ROOT\A`: {
				{Namespace: `ROOT\A`, Name: "Foo"},
				{Namespace: `ROOT\A`, Name: "Bar"},
			},
			`ROOT\B`: {
				{Namespace: `ROOT\B`, Name: "Baz"},
			},
		},
	}

	var out bytes.Buffer
	l := &Lister{Store: store, Out: &out}
	total := 0
	for _, namespace := range Walk(store, `ROOT`, true) {
		total += l.List(namespace)
	}

	require.Equal(t, 3, total)
	for _, name := range []string{"Foo", "Bar", "Baz"} {
		require.Contains(t, out.String(), "Name:             "+name)
	}
	// Records arrive namespace by namespace, A before B.
	require.Less(t, strings.Index(out.String(), "Foo"), strings.Index(out.String(), "Baz"))
}

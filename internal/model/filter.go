package model

// EventFilter is the four-field projection of a __EventFilter instance
type EventFilter struct {
	Namespace      string `json:"namespace"`
	Name           string `json:"name"`
	EventNamespace string `json:"event_namespace"`
	Query          string `json:"query"`

	// Path is the server-relative object path (__RELPATH). It is only
	// populated by the removal lookup so deletion targets exactly the
	// previewed instances; it is never part of the formatted listing.
	Path string `json:"path,omitempty"`
}

// Property is a single named value read off a WMI instance
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawFilter is a full __EventFilter instance as returned by the provider,
// system properties included, in provider order
type RawFilter struct {
	Namespace  string     `json:"namespace"`
	Properties []Property `json:"properties"`
}

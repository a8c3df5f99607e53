package wmi

// RootNamespace is the default starting point for namespace discovery.
const RootNamespace = `ROOT`

//go:build windows

package wmi

import (
	"golang.org/x/sys/windows"
)

// IsElevated reports whether the process token carries the elevated bit.
// Subscription namespaces are commonly unreadable without it.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

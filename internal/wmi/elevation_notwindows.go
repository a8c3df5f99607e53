//go:build !windows

package wmi

// IsElevated always reports true off Windows; elevation is a Windows
// concept and the warning it gates does not apply.
func IsElevated() bool {
	return true
}

//go:build !linux && !darwin && !windows

package platform

// Notify drops the notification; this platform has no notification center.
func Notify(string, string, Options) error { return nil }

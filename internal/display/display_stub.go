//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

// ListMonitors is unavailable without an X server.
func ListMonitors() ([]MonitorInfo, error) {
	return nil, ErrNoMonitors
}

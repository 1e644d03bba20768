// Package platform delivers desktop notifications on each host OS.
package platform

// AppName identifies the application to the host notification center.
const AppName = "Chalkboard"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMillis overrides the display time where the host supports it.
	// Zero keeps the default of five seconds.
	TimeoutMillis int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis > 0 {
		return o.TimeoutMillis
	}
	return 5000
}

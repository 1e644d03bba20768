//go:build darwin

package platform

import "os/exec"

// Notify displays a desktop notification using macOS Notification Center.
// The display time is left to the system.
func Notify(title, body string, _ Options) error {
	return exec.Command("osascript", "-e", osaScript(title, body)).Run()
}

//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"testing"

	"github.com/jezek/xgb"
)

func TestTargetList(t *testing.T) {
	a := atoms{clipboard: 1, targets: 2, png: 3, transfer: 4}

	buf := a.targetList(false)
	if len(buf) != 4 || xgb.Get32(buf) != 2 {
		t.Fatalf("expected only TARGETS, got %v", buf)
	}

	buf = a.targetList(true)
	if len(buf) != 8 {
		t.Fatalf("expected two atoms, got %d bytes", len(buf))
	}
	if got := xgb.Get32(buf[4:]); got != 3 {
		t.Fatalf("expected png atom 3, got %d", got)
	}
}

package display

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var layout = []MonitorInfo{
	{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 1, Name: "HDMI-A-1", Rect: image.Rect(1920, 0, 4480, 1440), Primary: true},
}

func TestFindMonitor(t *testing.T) {
	tests := []struct {
		selector string
		want     string
		wantErr  bool
	}{
		{"", "eDP-1", false},
		{"primary", "HDMI-A-1", false},
		{"1", "HDMI-A-1", false},
		{"#0", "eDP-1", false},
		{"hdmi", "HDMI-A-1", false},
		{"  EDP ", "eDP-1", false},
		{"5", "", true},
		{"-1", "", true},
		{"dp-9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got, err := FindMonitor(layout, tt.selector)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestFindMonitorEmpty(t *testing.T) {
	_, err := FindMonitor(nil, "primary")
	assert.True(t, errors.Is(err, ErrNoMonitors))
}

func TestPrimaryFallsBackToFirst(t *testing.T) {
	got, err := FindMonitor(layout[:1], "primary")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Index)
}

func TestViewport(t *testing.T) {
	fallback := image.Pt(1024, 768)
	assert.Equal(t, image.Pt(1820, 980), Viewport(layout[0], 50, fallback))
	assert.Equal(t, fallback, Viewport(MonitorInfo{}, 50, fallback))
	assert.Equal(t, fallback, Viewport(layout[0], 1000, fallback))
}

func TestMonitorString(t *testing.T) {
	assert.Equal(t, "1: HDMI-A-1 2560x1440+1920+0 primary", layout[1].String())
}

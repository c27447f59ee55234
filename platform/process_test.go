package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowInteractable(t *testing.T) {
	ok := Window{Visible: true, Enabled: true, Width: 640, Height: 480}
	assert.True(t, ok.Interactable())

	tests := map[string]func(w *Window){
		"hidden":      func(w *Window) { w.Visible = false },
		"disabled":    func(w *Window) { w.Enabled = false },
		"zero width":  func(w *Window) { w.Width = 0 },
		"zero height": func(w *Window) { w.Height = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			w := ok
			mutate(&w)
			assert.False(t, w.Interactable())
		})
	}
}

func TestFilterDrivers(t *testing.T) {
	drivers := []DriverInfo{
		{DeviceName: "Intel(R) Wi-Fi 6 AX201", DeviceID: `PCI\VEN_8086&DEV_A0F0`, DriverVersion: "22.250.1.2"},
		{DeviceName: "Realtek Audio", DeviceID: `HDAUDIO\FUNC_01&VEN_10EC`, DriverVersion: "6.0.9235.1"},
		{DeviceName: "Standard SATA AHCI Controller", DeviceID: `PCI\VEN_8086&DEV_A0D3`, DriverVersion: "10.0.19041.1"},
	}

	all := filterDrivers(append([]DriverInfo(nil), drivers...), "")
	assert.Len(t, all, 3)

	byName := filterDrivers(append([]DriverInfo(nil), drivers...), "realtek")
	assert.Equal(t, []DriverInfo{drivers[1]}, byName)

	byID := filterDrivers(append([]DriverInfo(nil), drivers...), "ven_8086")
	assert.Len(t, byID, 2)

	none := filterDrivers(append([]DriverInfo(nil), drivers...), "nvidia")
	assert.Empty(t, none)
}

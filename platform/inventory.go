package platform

import "strings"

// DriverInfo is one installed driver as reported by the OS inventory.
type DriverInfo struct {
	DeviceName    string `json:"device_name" yaml:"device_name"`
	DeviceID      string `json:"device_id" yaml:"device_id"`
	DriverVersion string `json:"driver_version" yaml:"driver_version"`
	Manufacturer  string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
}

// matches reports whether the filter appears in the device name or id,
// ignoring case. An empty filter matches everything.
func (d DriverInfo) matches(filter string) bool {
	if filter == "" {
		return true
	}
	filter = strings.ToLower(filter)
	return strings.Contains(strings.ToLower(d.DeviceName), filter) ||
		strings.Contains(strings.ToLower(d.DeviceID), filter)
}

func filterDrivers(drivers []DriverInfo, filter string) []DriverInfo {
	out := drivers[:0]
	for _, d := range drivers {
		if d.matches(filter) {
			out = append(out, d)
		}
	}
	return out
}

//go:build !windows

package platform

// QueryDriverVersions is only available on Windows.
func QueryDriverVersions(filter string) ([]DriverInfo, error) {
	return nil, ErrNotSupported
}

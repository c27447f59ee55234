//go:build windows

package platform

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const driverQuery = "SELECT DeviceName, DeviceID, DriverVersion, Manufacturer " +
	"FROM Win32_PnPSignedDriver WHERE DriverVersion IS NOT NULL"

// QueryDriverVersions lists installed signed drivers through WMI. The filter
// is matched against device name and device id in Go rather than spliced into
// the WQL query.
func QueryDriverVersions(filter string) (drivers []DriverInfo, err error) {
	// Recover from access violations in raw COM calls.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("COM panic: %v", r)
		}
	}()

	// COM is thread-bound.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		// S_FALSE (1) means already initialized on this thread.
		if oleErr, ok := err.(*ole.OleError); !ok || (oleErr.Code() != 0 && oleErr.Code() != 1) {
			return nil, fmt.Errorf("CoInitializeEx: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return nil, fmt.Errorf("create WMI locator: %w", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("query WMI locator: %w", err)
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, `root\cimv2`)
	if err != nil {
		return nil, fmt.Errorf("connect WMI: %w", err)
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", driverQuery)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}
	count := int(countVar.Val)
	countVar.Clear()

	for i := 0; i < count; i++ {
		itemRaw, err := oleutil.CallMethod(result, "ItemIndex", i)
		if err != nil {
			continue
		}
		item := itemRaw.ToIDispatch()
		drivers = append(drivers, DriverInfo{
			DeviceName:    propertyString(item, "DeviceName"),
			DeviceID:      propertyString(item, "DeviceID"),
			DriverVersion: propertyString(item, "DriverVersion"),
			Manufacturer:  propertyString(item, "Manufacturer"),
		})
		item.Release()
	}

	return filterDrivers(drivers, filter), nil
}

func propertyString(item *ole.IDispatch, name string) string {
	v, err := oleutil.GetProperty(item, name)
	if err != nil {
		return ""
	}
	defer v.Clear()
	if v.VT == ole.VT_NULL || v.VT == ole.VT_EMPTY {
		return ""
	}
	return v.ToString()
}

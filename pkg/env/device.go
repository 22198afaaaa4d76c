// Package env provides the device identity.
package env

import (
	"flag"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID salts the machine ID so it is not exposed as is.
const AppID = "slider"

// FallbackID is used when the machine has no readable ID.
const FallbackID = "slider0"

var deviceID string

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&deviceID, "id", deviceID, "Device ID, defaults to one derived from the machine ID.")
}

// DeviceID returns the configured device ID, or one derived from the
// machine ID.
func DeviceID() string {
	if deviceID != "" {
		return deviceID
	}
	return MachineID()
}

// MachineID returns a stable ID derived from the machine ID.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		glog.Warningf("machine id: %v, using %s", err, FallbackID)
		return FallbackID
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

func init() {
	deviceID = os.Getenv("SLIDER_ID")
}

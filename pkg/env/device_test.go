package env

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceID(t *testing.T) {
	saved := deviceID
	defer func() { deviceID = saved }()

	deviceID = "bench"
	require.Equal(t, "bench", DeviceID())

	deviceID = ""
	id := DeviceID()
	require.NotEmpty(t, id)
	require.Equal(t, id, MachineID())
}

package msgs

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/slider.go/pkg/motor"
	"github.com/robotalks/slider.go/pkg/slider"
)

func TestSliderStatusTyped(t *testing.T) {
	status := NewSliderStatus(slider.Axis{
		Position: -42,
		State:    slider.StateMoving,
		Target:   &slider.Target{Position: 100, Speed: 500},
	})
	typed, err := TypedFrom(status)
	require.NoError(t, err)
	require.True(t, typed.IsEvent())
	data, err := typed.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTyped(data)
	require.NoError(t, err)
	require.Equal(t, SliderStatusTypeID, decoded.TypeId)
	msg, err := decoded.Decode()
	require.NoError(t, err)
	require.True(t, proto.Equal(status, msg.(*SliderStatus)))
	require.Equal(t, "moving", msg.(*SliderStatus).State)
}

func TestSliderStatusFault(t *testing.T) {
	status := NewSliderStatus(slider.Axis{State: slider.StateError, Fault: motor.FaultLimitReached})
	require.Nil(t, status.Target)
	require.Equal(t, &SliderFault{Code: 20, Reason: "LIMIT_REACHED"}, status.Fault)
}

func TestTypedErrors(t *testing.T) {
	_, err := TypedFrom("not a message")
	require.Equal(t, ErrNotSerializable, err)
	_, err = (&Typed{TypeId: 0x1234}).Decode()
	require.Equal(t, &ErrUnknownType{TypeID: 0x1234}, err)
}

package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/slider"
)

// SliderStatus is an Event message reflecting the axis state.
type SliderStatus struct {
	State    string        `protobuf:"bytes,1,opt,name=state,proto3" json:"state,omitempty"`
	Position int32         `protobuf:"varint,2,opt,name=position,proto3" json:"position,omitempty"`
	Homed    bool          `protobuf:"varint,3,opt,name=homed,proto3" json:"homed,omitempty"`
	Target   *SliderTarget `protobuf:"bytes,4,opt,name=target,proto3" json:"target,omitempty"`
	Fault    *SliderFault  `protobuf:"bytes,5,opt,name=fault,proto3" json:"fault,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *SliderStatus) NewMessage() fx.Message { return &SliderStatus{} }

// TypeID implements SerializableMessage.
func (m *SliderStatus) TypeID() uint32 { return SliderStatusTypeID }

// ProtoMessage implements proto.Message.
func (m *SliderStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SliderStatus) Reset() { *m = SliderStatus{} }

// String implements proto.Message.
func (m *SliderStatus) String() string { return proto.CompactTextString(m) }

// SliderTarget is the target of a running move.
type SliderTarget struct {
	Position int32  `protobuf:"varint,1,opt,name=position,proto3" json:"position,omitempty"`
	Speed    uint32 `protobuf:"varint,2,opt,name=speed,proto3" json:"speed,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SliderTarget) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SliderTarget) Reset() { *m = SliderTarget{} }

// String implements proto.Message.
func (m *SliderTarget) String() string { return proto.CompactTextString(m) }

// SliderFault is the latched motor fault.
type SliderFault struct {
	Code   int32  `protobuf:"varint,1,opt,name=code,proto3" json:"code,omitempty"`
	Reason string `protobuf:"bytes,2,opt,name=reason,proto3" json:"reason,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SliderFault) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SliderFault) Reset() { *m = SliderFault{} }

// String implements proto.Message.
func (m *SliderFault) String() string { return proto.CompactTextString(m) }

// NewSliderStatus converts an axis state.
func NewSliderStatus(axis slider.Axis) *SliderStatus {
	m := &SliderStatus{
		State:    axis.State.String(),
		Position: axis.Position,
		Homed:    axis.Homed,
	}
	if t := axis.Target; t != nil {
		m.Target = &SliderTarget{Position: t.Position, Speed: t.Speed}
	}
	if f := axis.Fault; f != nil {
		m.Fault = &SliderFault{Code: int32(f.Code), Reason: f.Reason}
	}
	return m
}

// GroupSlider is the message group of the slider.
const GroupSlider uint32 = 0x00100000

// TypeIDs
const (
	SliderStatusTypeID uint32 = GroupSlider | TypeIDKindEvent | 0x0000
)

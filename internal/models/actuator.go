package models

import (
	"errors"
	"strings"
	"time"
)

// ActuatorKind names one of the simulated actuators of a greenhouse.
type ActuatorKind string

const (
	IrrigationPump ActuatorKind = "irrigation_pump"
	UVLamp         ActuatorKind = "uv_lamp"
	VentilationFan ActuatorKind = "ventilation_fan"
)

// ErrUnknownActuator is returned for an actuator name outside the known kinds.
var ErrUnknownActuator = errors.New("unknown actuator: must be irrigation_pump, uv_lamp or ventilation_fan")

// ActuatorKinds lists every kind in display order.
var ActuatorKinds = []ActuatorKind{IrrigationPump, UVLamp, VentilationFan}

// ParseActuatorKind accepts snake_case or the camelCase keys the dashboard uses.
func ParseActuatorKind(s string) (ActuatorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "irrigation_pump", "irrigationpump", "pump":
		return IrrigationPump, nil
	case "uv_lamp", "uvlamp":
		return UVLamp, nil
	case "ventilation_fan", "ventilationfan", "fan":
		return VentilationFan, nil
	default:
		return "", ErrUnknownActuator
	}
}

// ActuatorState is a single actuator flag.
type ActuatorState struct {
	Kind ActuatorKind `json:"kind"`
	IsOn bool         `json:"is_on"`
}

// Actuators holds the flags of one greenhouse.
type Actuators struct {
	IrrigationPump bool `json:"irrigation_pump"`
	UVLamp         bool `json:"uv_lamp"`
	VentilationFan bool `json:"ventilation_fan"`
}

// Get returns the flag for kind.
func (a Actuators) Get(kind ActuatorKind) (bool, error) {
	switch kind {
	case IrrigationPump:
		return a.IrrigationPump, nil
	case UVLamp:
		return a.UVLamp, nil
	case VentilationFan:
		return a.VentilationFan, nil
	default:
		return false, ErrUnknownActuator
	}
}

// With returns a copy of a with kind set to on. Other flags are untouched.
func (a Actuators) With(kind ActuatorKind, on bool) (Actuators, error) {
	switch kind {
	case IrrigationPump:
		a.IrrigationPump = on
	case UVLamp:
		a.UVLamp = on
	case VentilationFan:
		a.VentilationFan = on
	default:
		return a, ErrUnknownActuator
	}
	return a, nil
}

// Toggled returns a copy of a with kind flipped.
func (a Actuators) Toggled(kind ActuatorKind) (Actuators, error) {
	cur, err := a.Get(kind)
	if err != nil {
		return a, err
	}
	return a.With(kind, !cur)
}

// ActiveCount is the number of actuators switched on.
func (a Actuators) ActiveCount() int {
	n := 0
	for _, on := range []bool{a.IrrigationPump, a.UVLamp, a.VentilationFan} {
		if on {
			n++
		}
	}
	return n
}

// States lists the flags as ActuatorState values in display order.
func (a Actuators) States() []ActuatorState {
	out := make([]ActuatorState, 0, len(ActuatorKinds))
	for _, k := range ActuatorKinds {
		on, _ := a.Get(k)
		out = append(out, ActuatorState{Kind: k, IsOn: on})
	}
	return out
}

// ActuatorChange is emitted after a user switched an actuator.
type ActuatorChange struct {
	GreenhouseID int          `json:"greenhouse_id"`
	Kind         ActuatorKind `json:"kind"`
	IsOn         bool         `json:"is_on"`
	Actuators    Actuators    `json:"actuators"`
	ChangedAt    time.Time    `json:"changed_at"`
}

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// OutputChannel is the target of the internal scan.
type OutputChannel int

const (
	OutputOutA OutputChannel = 20
	OutputOutB OutputChannel = 21
	OutputPC   OutputChannel = 50 // piezo voltage
	OutputCC   OutputChannel = 51 // laser current
)

var outputChannelNames = map[OutputChannel]string{
	OutputPC:   "PC",
	OutputCC:   "CC",
	OutputOutA: "OutA",
	OutputOutB: "OutB",
}

func (c OutputChannel) String() string {
	if s, ok := outputChannelNames[c]; ok {
		return s
	}
	return fmt.Sprintf("OutputChannel(%d)", int(c))
}

// Valid reports whether c is a channel the controller knows.
func (c OutputChannel) Valid() bool {
	_, ok := outputChannelNames[c]
	return ok
}

// ParseOutputChannel accepts "PC", "CC", "OutA", "OutB" in any case.
func ParseOutputChannel(s string) (OutputChannel, error) {
	want := strings.TrimSpace(s)
	for c, name := range outputChannelNames {
		if strings.EqualFold(name, want) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown output channel %q: must be one of PC, CC, OutA, OutB", s)
}

// InputChannel is an analogue input port used by the remote control.
type InputChannel int

const (
	InputNotSelected InputChannel = -3
	InputFine1       InputChannel = 0
	InputFine2       InputChannel = 1
	InputFast3       InputChannel = 2
	InputFast4       InputChannel = 3
)

var inputChannelNames = map[InputChannel]string{
	InputNotSelected: "NotSelected",
	InputFine1:       "Fine1",
	InputFine2:       "Fine2",
	InputFast3:       "Fast3",
	InputFast4:       "Fast4",
}

func (c InputChannel) String() string {
	if s, ok := inputChannelNames[c]; ok {
		return s
	}
	return fmt.Sprintf("InputChannel(%d)", int(c))
}

func (c InputChannel) Valid() bool {
	_, ok := inputChannelNames[c]
	return ok
}

// ParseInputChannel accepts "Fine1", "Fine2", "Fast3", "Fast4" in any case.
// NotSelected is readable from the device but cannot be requested.
func ParseInputChannel(s string) (InputChannel, error) {
	want := strings.TrimSpace(s)
	for c, name := range inputChannelNames {
		if c == InputNotSelected {
			continue
		}
		if strings.EqualFold(name, want) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown input channel %q: must be one of Fine1, Fine2, Fast3, Fast4", s)
}

// RemoteUnit selects which analogue remote control is addressed.
type RemoteUnit string

const (
	RemoteCC RemoteUnit = "cc" // current controller
	RemotePC RemoteUnit = "pc" // piezo controller
)

// RemoteUnits lists the units in snapshot order.
var RemoteUnits = []RemoteUnit{RemoteCC, RemotePC}

// ParseRemoteUnit accepts "cc" or "pc" in any case.
func ParseRemoteUnit(s string) (RemoteUnit, error) {
	switch RemoteUnit(strings.ToLower(strings.TrimSpace(s))) {
	case RemoteCC:
		return RemoteCC, nil
	case RemotePC:
		return RemotePC, nil
	default:
		return "", fmt.Errorf("remote unit must be either 'pc' or 'cc' (tried using %q)", s)
	}
}

// UserLevel is the privilege level of a client connection.
type UserLevel int

const (
	UserLevelInternal    UserLevel = 0
	UserLevelService     UserLevel = 1
	UserLevelMaintenance UserLevel = 2
	UserLevelNormal      UserLevel = 3
	UserLevelReadonly    UserLevel = 4
)

func (l UserLevel) String() string {
	switch l {
	case UserLevelInternal:
		return "INTERNAL"
	case UserLevelService:
		return "SERVICE"
	case UserLevelMaintenance:
		return "MAINTENANCE"
	case UserLevelNormal:
		return "NORMAL"
	case UserLevelReadonly:
		return "READONLY"
	default:
		return fmt.Sprintf("UserLevel(%d)", int(l))
	}
}

// ParseUserLevel accepts a level name (e.g. "maintenance") or its number.
func ParseUserLevel(s string) (UserLevel, error) {
	want := strings.TrimSpace(s)
	if n, err := strconv.Atoi(want); err == nil {
		if l := UserLevel(n); l >= UserLevelInternal && l <= UserLevelReadonly {
			return l, nil
		}
		return 0, fmt.Errorf("user level %d out of range 0-4", n)
	}
	for l := UserLevelInternal; l <= UserLevelReadonly; l++ {
		if strings.EqualFold(l.String(), want) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown user level %q", s)
}

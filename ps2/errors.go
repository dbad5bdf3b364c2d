package ps2

import (
	"errors"
	"fmt"
)

var (
	// ErrRetriesExceeded is returned when the device kept answering RESEND.
	ErrRetriesExceeded = errors.New("ps2: retries exceeded")
	// ErrDeviceUnavailable is returned for commands to a port with no device.
	ErrDeviceUnavailable = errors.New("ps2: device unavailable")
	// ErrDeviceDisabled is returned for device commands while the port is disabled.
	ErrDeviceDisabled = errors.New("ps2: device disabled")
	// ErrExpectedResponse is returned when a response was expected but none arrived in time.
	ErrExpectedResponse = errors.New("ps2: expected response, got none")
	// ErrInputFull is returned when the controller input buffer never drained.
	ErrInputFull = errors.New("ps2: controller input buffer stayed full")
)

// UnexpectedResponseError carries the byte received where an ACK (or another
// specific reply) was expected.
type UnexpectedResponseError struct {
	Response byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("ps2: unexpected response 0x%02x", e.Response)
}

// UnknownDeviceError is returned by Identify for identity bytes with no known DeviceType.
type UnknownDeviceError struct {
	Identifier byte
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("ps2: unknown device identifier 0x%02x", e.Identifier)
}

package att

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed attribute packet")
	ErrInvalidSize = errors.New("invalid size")
	ErrTooShort    = errors.New("too short packet")
)

// ErrorCode is the error carried by an Error Response.
type ErrorCode uint8

var errorCodes = map[ErrorCode]string{
	0x01: "Invalid Handle",
	0x02: "Read Not Permitted",
	0x03: "Write Not Permitted",
	0x04: "Invalid PDU",
	0x05: "Insufficient Authentication",
	0x06: "Request Not Supported",
	0x07: "Invalid Offset",
	0x08: "Insufficient Authorization",
	0x09: "Prepare Queue Full",
	0x0a: "Attribute Not Found",
	0x0b: "Attribute Not Long",
	0x0c: "Insufficient Encryption Key Size",
	0x0d: "Invalid Attribute Value Length",
	0x0e: "Unlikely Error",
	0x0f: "Insufficient Encryption",
	0x10: "Unsupported Group Type",
	0x11: "Insufficient Resources",
	0x12: "Database Out of Sync",
	0x13: "Value Not Allowed",
	0xfd: "CCC Improperly Configured",
	0xfe: "Procedure Already in Progress",
	0xff: "Out of Range",
}

func (e ErrorCode) String() string {
	n, ok := errorCodes[e]
	if !ok {
		n = "Reserved"
	}
	return fmt.Sprintf("%s (0x%2.2x)", n, uint8(e))
}

package stacks

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	satai "github.com/satai-labs/go-satai"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Clarity value type tags, per the SIP-005 wire format
const (
	clarityUInt        = 0x01
	clarityBoolTrue    = 0x03
	clarityBoolFalse   = 0x04
	clarityResponseOk  = 0x07
	clarityResponseErr = 0x08
	clarityNone        = 0x09
	claritySome        = 0x0a
	clarityStringASCII = 0x0d
	clarityStringUTF8  = 0x0e
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DecodeClarity decodes a hex-encoded serialized Clarity value into a Go
// value. Response and optional wrappers are unwrapped; a response error
// wrapper is returned as an error. Only the value types returned by token
// metadata entry points are supported.
func DecodeClarity(value string) (any, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, satai.ErrBadParameter.Withf("invalid clarity value: %v", err)
	}
	result, rest, err := decodeClarity(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, satai.ErrBadParameter.With("invalid clarity value: trailing data")
	}
	return result, nil
}

// StringValue returns the string form of a decoded Clarity value, stripping
// surrounding quote characters from a generic textual representation
func StringValue(value any) (string, bool) {
	str, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.Trim(str, `"`), true
}

// UIntValue returns the unsigned integer form of a decoded Clarity value
func UIntValue(value any) (uint64, bool) {
	v, ok := value.(uint64)
	return v, ok
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeClarity(data []byte) (any, []byte, error) {
	if len(data) == 0 {
		return nil, nil, satai.ErrBadParameter.With("invalid clarity value: empty")
	}
	tag, data := data[0], data[1:]
	switch tag {
	case clarityUInt:
		if len(data) < 16 {
			return nil, nil, satai.ErrBadParameter.With("invalid clarity uint")
		}
		for _, b := range data[:8] {
			if b != 0 {
				return nil, nil, satai.ErrBadParameter.With("clarity uint out of range")
			}
		}
		return binary.BigEndian.Uint64(data[8:16]), data[16:], nil
	case clarityBoolTrue:
		return true, data, nil
	case clarityBoolFalse:
		return false, data, nil
	case clarityResponseOk, claritySome:
		return decodeClarity(data)
	case clarityResponseErr:
		value, rest, err := decodeClarity(data)
		if err != nil {
			return nil, nil, err
		}
		return nil, rest, satai.ErrUpstream.Withf("contract returned an error response: %v", value)
	case clarityNone:
		return nil, data, nil
	case clarityStringASCII, clarityStringUTF8:
		if len(data) < 4 {
			return nil, nil, satai.ErrBadParameter.With("invalid clarity string")
		}
		length := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		if uint32(len(data)) < length {
			return nil, nil, satai.ErrBadParameter.With("invalid clarity string")
		}
		return string(data[:length]), data[length:], nil
	default:
		return nil, nil, satai.ErrNotImplemented.Withf("unsupported clarity type tag 0x%02x", tag)
	}
}

// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// Kind classifies why an operation was reverted.
type Kind uint8

const (
	Unknown Kind = iota
	Unauthorized
	InvalidArgument
	InsufficientFunds
	InvalidState
	ExternalCallFailed
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case InvalidArgument:
		return "invalid_argument"
	case InsufficientFunds:
		return "insufficient_funds"
	case InvalidState:
		return "invalid_state"
	case ExternalCallFailed:
		return "external_call_failed"
	default:
		return "unknown"
	}
}

// ErrRequire is a failed requirement of a contract operation. It carries the
// reason string surfaced to callers.
type ErrRequire struct {
	kind    Kind
	message string
}

// NewRequireError creates a revert error of unknown kind.
func NewRequireError(message string) *ErrRequire {
	return &ErrRequire{message: message}
}

// New creates a revert error of the given kind.
func New(kind Kind, message string) *ErrRequire {
	return &ErrRequire{kind: kind, message: message}
}

func (e *ErrRequire) Error() string {
	return e.message
}

// Kind returns the revert kind.
func (e *ErrRequire) Kind() Kind {
	return e.kind
}

// Bytes returns the ABI encoding of Error(string) carrying the message.
func (e *ErrRequire) Bytes() []byte {
	if e == nil {
		return nil
	}

	selector, _ := hex.DecodeString("08c379a0")
	msgBytes := []byte(e.message)
	msgLen := uint64(len(msgBytes))

	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	encoded := make([]byte, 0, 4+32+32+((len(msgBytes)+31)/32)*32)
	encoded = append(encoded, selector...)

	offset := make([]byte, 32)
	binary.BigEndian.PutUint64(offset[24:], 32)
	encoded = append(encoded, offset...)

	length := make([]byte, 32)
	binary.BigEndian.PutUint64(length[24:], msgLen)
	encoded = append(encoded, length...)

	data := make([]byte, ((len(msgBytes)+31)/32)*32)
	copy(data, msgBytes)
	encoded = append(encoded, data...)

	return encoded
}

// IsRevertErr reports whether err is, or wraps, a revert error.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRequire
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// KindOf returns the kind of a revert error, Unknown for anything else.
func KindOf(err error) Kind {
	var ve *ErrRequire
	if errors.As(err, &ve) && ve != nil {
		return ve.kind
	}
	return Unknown
}

// Require returns a revert error of the given kind when cond does not hold.
func Require(cond bool, kind Kind, message string) error {
	if cond {
		return nil
	}
	return New(kind, message)
}

// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"bytes"
	"encoding/hex"
	"errors"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// MethodID method id.
type MethodID [4]byte

// String returns the hex form of the id.
func (id MethodID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Bytes returns byte slice form of the id.
func (id MethodID) Bytes() []byte {
	return id[:]
}

// Method see abi.Method in go-ethereum.
type Method struct {
	id     MethodID
	method *ethabi.Method
}

// ID returns method id.
func (m *Method) ID() MethodID {
	return m.id
}

// Name returns method name.
func (m *Method) Name() string {
	return m.method.Name
}

// Sig returns the canonical signature, e.g. transfer(address,uint256).
func (m *Method) Sig() string {
	return m.method.Sig
}

// Const returns if the method is const.
func (m *Method) Const() bool {
	return m.method.IsConstant()
}

// Inputs returns the input arguments.
func (m *Method) Inputs() ethabi.Arguments {
	return m.method.Inputs
}

// Outputs returns the output arguments.
func (m *Method) Outputs() ethabi.Arguments {
	return m.method.Outputs
}

// EncodeInput encode args to data, and the data is prefixed with method id.
func (m *Method) EncodeInput(args ...any) ([]byte, error) {
	data, err := m.method.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	return append(m.id[:], data...), nil
}

// DecodeInput decode input data into args.
func (m *Method) DecodeInput(input []byte, v any) error {
	if !bytes.HasPrefix(input, m.id[:]) {
		return errors.New("input has incorrect prefix")
	}
	values, err := m.method.Inputs.Unpack(input[4:])
	if err != nil {
		return err
	}
	return m.method.Inputs.Copy(v, values)
}

// DecodeInputValues decode input data into generic values.
func (m *Method) DecodeInputValues(input []byte) ([]any, error) {
	if !bytes.HasPrefix(input, m.id[:]) {
		return nil, errors.New("input has incorrect prefix")
	}
	return m.method.Inputs.Unpack(input[4:])
}

// EncodeOutput encode output args to data.
func (m *Method) EncodeOutput(args ...any) ([]byte, error) {
	return m.method.Outputs.Pack(args...)
}

// DecodeOutput decode output data.
func (m *Method) DecodeOutput(output []byte, v any) error {
	if len(output)%32 != 0 {
		return errors.New("output has incorrect length")
	}
	values, err := m.method.Outputs.Unpack(output)
	if err != nil {
		return err
	}
	return m.method.Outputs.Copy(v, values)
}

// DecodeOutputValues decode output data into generic values.
func (m *Method) DecodeOutputValues(output []byte) ([]any, error) {
	if len(output)%32 != 0 {
		return nil, errors.New("output has incorrect length")
	}
	return m.method.Outputs.Unpack(output)
}

// ExtractMethodID extract method id from input data.
func ExtractMethodID(input []byte) (id MethodID, err error) {
	if len(input) < len(id) {
		err = errors.New("input data too short")
		return
	}
	copy(id[:], input)
	return
}

// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/umb"
)

// parseArgs converts command line arguments into values packable as inputs.
// Array and slice arguments are comma separated.
func parseArgs(inputs ethabi.Arguments, args []string) ([]any, error) {
	if len(args) != len(inputs) {
		return nil, errors.Errorf("expected %d arguments, got %d", len(inputs), len(args))
	}
	values := make([]any, 0, len(args))
	for i, input := range inputs {
		v, err := parseArg(input.Type, args[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "argument %d (%s %s)", i, input.Type.String(), input.Name)
		}
		values = append(values, v.Interface())
	}
	return values, nil
}

func parseArg(t ethabi.Type, s string) (reflect.Value, error) {
	s = strings.TrimSpace(s)
	switch t.T {
	case ethabi.AddressTy:
		addr, err := umb.ParseAddress(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(common.Address(*addr)), nil
	case ethabi.UintTy, ethabi.IntTy:
		return parseInteger(t, s)
	case ethabi.BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case ethabi.StringTy:
		return reflect.ValueOf(s), nil
	case ethabi.BytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case ethabi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if len(b) != t.Size {
			return reflect.Value{}, errors.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v, nil
	case ethabi.SliceTy, ethabi.ArrayTy:
		var items []string
		if s != "" {
			items = strings.Split(s, ",")
		}
		var v reflect.Value
		if t.T == ethabi.SliceTy {
			v = reflect.MakeSlice(t.GetType(), len(items), len(items))
		} else {
			if len(items) != t.Size {
				return reflect.Value{}, errors.Errorf("expected %d elements, got %d", t.Size, len(items))
			}
			v = reflect.New(t.GetType()).Elem()
		}
		for i, item := range items {
			elem, err := parseArg(*t.Elem, item)
			if err != nil {
				return reflect.Value{}, errors.WithMessagef(err, "element %d", i)
			}
			v.Index(i).Set(elem)
		}
		return v, nil
	}
	return reflect.Value{}, errors.Errorf("unsupported type %s", t.String())
}

// parseInteger parses an integer of type t. Unsigned values take the amount forms,
// so "15 ether" is 15*10^18.
func parseInteger(t ethabi.Type, s string) (reflect.Value, error) {
	var v *big.Int
	if t.T == ethabi.UintTy {
		var amount genesis.Amount
		if err := amount.UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		v = amount.Big()
		if v.BitLen() > t.Size {
			return reflect.Value{}, errors.Errorf("%v overflows %s", v, t.String())
		}
	} else {
		n, ok := math.ParseBig256(s)
		if !ok {
			return reflect.Value{}, errors.Errorf("invalid integer %q", s)
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return reflect.Value{}, errors.Errorf("%v overflows %s", n, t.String())
		}
		v = n
	}

	typ := t.GetType()
	switch typ.Kind() {
	case reflect.Ptr:
		return reflect.ValueOf(v), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out := reflect.New(typ).Elem()
		out.SetUint(v.Uint64())
		return out, nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out := reflect.New(typ).Elem()
		out.SetInt(v.Int64())
		return out, nil
	}
	return reflect.Value{}, errors.Errorf("unsupported type %s", t.String())
}

// namedValue is a decoded argument.
type namedValue struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func formatArgs(args ethabi.Arguments, values []any) []*namedValue {
	out := make([]*namedValue, 0, len(values))
	for i, v := range values {
		nv := &namedValue{Value: formatValue(v)}
		if i < len(args) {
			nv.Name = args[i].Name
			nv.Type = args[i].Type.String()
		}
		out = append(out, nv)
	}
	return out
}

// formatMap formats decoded event args, ordered as declared in args.
func formatMap(args ethabi.Arguments, m map[string]any) []*namedValue {
	out := make([]*namedValue, 0, len(m))
	for _, arg := range args {
		if v, ok := m[arg.Name]; ok {
			out = append(out, &namedValue{Name: arg.Name, Type: arg.Type.String(), Value: formatValue(v)})
			delete(m, arg.Name)
		}
	}
	rest := make([]string, 0, len(m))
	for name := range m {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, &namedValue{Name: name, Value: formatValue(m[name])})
	}
	return out
}

// formatValue renders a decoded value for json output. Integers of more than 64 bits
// become decimal strings and byte arrays become hex.
func formatValue(v any) any {
	switch v := v.(type) {
	case common.Address:
		return v.Hex()
	case *big.Int:
		return v.String()
	case []byte:
		return hexutil.Encode(v)
	case bool, string:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v
	case reflect.Array, reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = formatValue(rv.Index(i).Interface())
		}
		return items
	}
	return fmt.Sprint(v)
}

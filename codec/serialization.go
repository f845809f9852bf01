// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"reflect"

	"github.com/near/borsh-go"
)

// Serialize encodes [value] with borsh. All persisted records and
// signing messages share this codec so byte layouts are explicit
// rather than incidental. Pointers are encoded as the value they point
// at (borsh would otherwise frame them as an Option), keeping the bytes
// symmetric with Deserialize.
func Serialize[T any](value T) ([]byte, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrNilValue
		}
		rv = rv.Elem()
	}
	b := &bytes.Buffer{}
	if err := borsh.NewEncoder(b).Encode(rv.Interface()); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Deserialize decodes a borsh-encoded [T] from [data].
func Deserialize[T any](data []byte) (*T, error) {
	result := new(T)
	if err := borsh.Deserialize(result, data); err != nil {
		return nil, err
	}
	return result, nil
}

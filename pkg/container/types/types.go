// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type T uint8

const (
	// any family
	T_any T = 0

	// bool family
	T_bool T = 10

	// numeric/integer family
	T_int8   T = 20
	T_int16  T = 21
	T_int32  T = 22
	T_int64  T = 23
	T_uint8  T = 25
	T_uint16 T = 26
	T_uint32 T = 27
	T_uint64 T = 28

	// numeric/float family
	T_float32 T = 30
	T_float64 T = 31

	// numeric/decimals
	T_decimal64  T = 32
	T_decimal128 T = 33

	// string family
	T_char    T = 40
	T_varchar T = 41
)

const (
	MaxDecimal64Width  = 18
	MaxDecimal128Width = 38
)

type Type struct {
	Oid T

	// XXX Dirty code!
	// Size is not set in vector.
	Size int32
	// Width means max Display width for float and double, char and varchar
	Width int32
	// Scale means number of fractional digits for decimal
	Scale int32
}

type Ints interface {
	int8 | int16 | int32 | int64
}

type UInts interface {
	uint8 | uint16 | uint32 | uint64
}

type Floats interface {
	float32 | float64
}

type Decimal interface {
	Decimal64 | Decimal128
}

// Number is every value a remainder kernel can consume.
type Number interface {
	constraints.Integer | constraints.Float | Decimal
}

func New(oid T, width, scale int32) Type {
	typ := oid.ToType()
	typ.Width = width
	typ.Scale = scale
	return typ
}

func (t Type) TypeSize() int {
	return t.Oid.TypeLen()
}

func (t Type) String() string {
	if t.Oid.IsDecimal() {
		return fmt.Sprintf("%s(%d,%d)", t.Oid, t.Width, t.Scale)
	}
	return t.Oid.String()
}

func (t Type) Eq(b Type) bool {
	return t.Oid == b.Oid && t.Size == b.Size && t.Width == b.Width && t.Scale == b.Scale
}

func (t T) ToType() Type {
	var typ Type

	typ.Oid = t
	switch t {
	case T_bool:
		typ.Size = 1
	case T_int8, T_uint8:
		typ.Size = 1
	case T_int16, T_uint16:
		typ.Size = 2
	case T_int32, T_uint32, T_float32:
		typ.Size = 4
	case T_int64, T_uint64, T_float64:
		typ.Size = 8
	case T_decimal64:
		typ.Size = 8
		typ.Width = MaxDecimal64Width
	case T_decimal128:
		typ.Size = 16
		typ.Width = MaxDecimal128Width
	case T_char, T_varchar:
		typ.Size = 24
	}
	return typ
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_decimal64:
		return "DECIMAL64"
	case T_decimal128:
		return "DECIMAL128"
	case T_char:
		return "CHAR"
	case T_varchar:
		return "VARCHAR"
	}
	return fmt.Sprintf("unexpected type: %d", t)
}

// TypeLen returns the length of the type in bytes, strings are reported
// as their slice header.
func (t T) TypeLen() int {
	return int(t.ToType().Size)
}

// ParseT maps a lower case type name, as used on the command line, to its T.
func ParseT(name string) (T, bool) {
	switch name {
	case "int8", "tinyint":
		return T_int8, true
	case "int16", "smallint":
		return T_int16, true
	case "int32", "int":
		return T_int32, true
	case "int64", "bigint":
		return T_int64, true
	case "uint8":
		return T_uint8, true
	case "uint16":
		return T_uint16, true
	case "uint32":
		return T_uint32, true
	case "uint64":
		return T_uint64, true
	case "float32", "float":
		return T_float32, true
	case "float64", "double":
		return T_float64, true
	case "decimal64":
		return T_decimal64, true
	case "decimal128", "decimal":
		return T_decimal128, true
	}
	return T_any, false
}

func (t T) IsInteger() bool {
	return t.IsSignedInt() || t.IsUnsignedInt()
}

func (t T) IsSignedInt() bool {
	return t >= T_int8 && t <= T_int64
}

func (t T) IsUnsignedInt() bool {
	return t >= T_uint8 && t <= T_uint64
}

func (t T) IsFloat() bool {
	return t == T_float32 || t == T_float64
}

func (t T) IsDecimal() bool {
	return t == T_decimal64 || t == T_decimal128
}

func (t T) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat() || t.IsDecimal()
}

// bitWidth of an integer type.
func (t T) bitWidth() int {
	return t.TypeLen() * 8
}

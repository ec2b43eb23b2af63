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
	"context"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
)

var signedOfWidth = map[int]T{
	8:  T_int8,
	16: T_int16,
	32: T_int32,
	64: T_int64,
}

var unsignedOfWidth = map[int]T{
	8:  T_uint8,
	16: T_uint16,
	32: T_uint32,
	64: T_uint64,
}

// ModResultType is the domain both operands of mod and pmod are brought
// into before the kernel runs.
//
//	float with anything numeric       -> float64
//	decimal with decimal or integer   -> decimal, scale = max(scales)
//	                                     decimal128 unless both are decimal64
//	unsigned with unsigned            -> unsigned of the wider width
//	signed with signed or unsigned    -> signed wide enough for both, at most 64 bits
func ModResultType(t1, t2 Type) (Type, error) {
	o1, o2 := t1.Oid, t2.Oid
	if !o1.IsNumeric() || !o2.IsNumeric() {
		return Type{}, moerr.NewNotSupported(context.Background(), "mod(%s, %s)", t1, t2)
	}
	switch {
	case o1.IsFloat() || o2.IsFloat():
		return T_float64.ToType(), nil
	case o1.IsDecimal() || o2.IsDecimal():
		scale := t1.Scale
		if t2.Scale > scale {
			scale = t2.Scale
		}
		if o1 == T_decimal64 && o2 == T_decimal64 {
			return New(T_decimal64, MaxDecimal64Width, scale), nil
		}
		return New(T_decimal128, MaxDecimal128Width, scale), nil
	case o1.IsUnsignedInt() && o2.IsUnsignedInt():
		return unsignedOfWidth[maxInt(o1.bitWidth(), o2.bitWidth())].ToType(), nil
	default:
		return signedOfWidth[minInt(maxInt(signedNeed(o1), signedNeed(o2)), 64)].ToType(), nil
	}
}

// signedNeed is the width of the narrowest signed type holding every value of t.
func signedNeed(t T) int {
	if t.IsUnsignedInt() {
		return t.bitWidth() * 2
	}
	return t.bitWidth()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

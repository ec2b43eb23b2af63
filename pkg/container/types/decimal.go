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
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
)

// Decimal64 is a fixed point number kept as value * 10^scale. The scale
// lives in the column type, two decimals of one column are always aligned.
type Decimal64 int64

// Decimal128 is the 128 bit two's complement counterpart of Decimal64.
type Decimal128 struct {
	B0_63   uint64
	B64_127 uint64
}

var (
	Decimal64Max  = Decimal64(999999999999999999)
	Decimal64Min  = Decimal64(-999999999999999999)
	Decimal128Max = Decimal128{B0_63: 0x098a224000000000 - 1, B64_127: 0x4b3b4ca85a86c47a}
	Decimal128Min = Decimal128Max.Neg()

	// maxMagnitude128 is the largest magnitude a Decimal128 can hold.
	maxMagnitude128 = uint128.New(math.MaxUint64, math.MaxInt64)
)

var pow10 = [...]uint64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

func Decimal64FromInt64(v int64) Decimal64 {
	return Decimal64(v)
}

func Decimal128FromInt64(v int64) Decimal128 {
	x := Decimal128{B0_63: uint64(v)}
	if v < 0 {
		x.B64_127 = math.MaxUint64
	}
	return x
}

func Decimal128FromUint64(v uint64) Decimal128 {
	return Decimal128{B0_63: v}
}

func (x Decimal64) ToDecimal128() Decimal128 {
	return Decimal128FromInt64(int64(x))
}

func (x Decimal64) IsZero() bool {
	return x == 0
}

func (x Decimal64) Sign() bool {
	return x < 0
}

func (x Decimal64) Neg() Decimal64 {
	return -x
}

func (x Decimal64) Add(y Decimal64) Decimal64 {
	return x + y
}

// Rem is the truncating remainder of two aligned decimals, the sign
// follows x. y must not be zero.
func (x Decimal64) Rem(y Decimal64) Decimal64 {
	return x % y
}

func (x Decimal64) Compare(y Decimal64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Scale multiplies x by 10^n, or divides with truncation when n < 0.
func (x Decimal64) Scale(n int32) (Decimal64, error) {
	if n == 0 {
		return x, nil
	}
	if n < 0 {
		if -n > 18 {
			return 0, nil
		}
		return x / Decimal64(pow10[-n]), nil
	}
	if n > 18 {
		return 0, moerr.NewOutOfRangeNoCtx("decimal64", "value %d scale %d", int64(x), n)
	}
	p := Decimal64(pow10[n])
	if x > Decimal64Max/p || x < Decimal64Min/p {
		return 0, moerr.NewOutOfRangeNoCtx("decimal64", "value %d scale %d", int64(x), n)
	}
	return x * p, nil
}

func (x Decimal64) ToFloat64(scale int32) float64 {
	return float64(x) / math.Pow10(int(scale))
}

func (x Decimal64) Format(scale int32) string {
	return decimal.New(int64(x), -scale).StringFixed(scale)
}

func ParseDecimal64(s string, width, scale int32) (Decimal64, error) {
	bi, err := parseScaled(s, width, scale)
	if err != nil {
		return 0, err
	}
	if !bi.IsInt64() {
		return 0, moerr.NewOutOfRangeNoCtx("decimal64", "value '%s'", s)
	}
	return Decimal64(bi.Int64()), nil
}

func (x Decimal128) IsZero() bool {
	return x.B0_63 == 0 && x.B64_127 == 0
}

func (x Decimal128) Sign() bool {
	return x.B64_127>>63 == 1
}

func (x Decimal128) Neg() Decimal128 {
	return fromUint128(uint128.Zero.SubWrap(x.bits()))
}

// Add wraps on overflow.
func (x Decimal128) Add(y Decimal128) Decimal128 {
	return fromUint128(x.bits().AddWrap(y.bits()))
}

func (x Decimal128) Compare(y Decimal128) int {
	xh, yh := int64(x.B64_127), int64(y.B64_127)
	switch {
	case xh < yh:
		return -1
	case xh > yh:
		return 1
	case x.B0_63 < y.B0_63:
		return -1
	case x.B0_63 > y.B0_63:
		return 1
	}
	return 0
}

// Rem is the truncating remainder of two aligned decimals, the sign
// follows x. y must not be zero.
func (x Decimal128) Rem(y Decimal128) Decimal128 {
	r := fromUint128(x.abs().Mod(y.abs()))
	if x.Sign() {
		return r.Neg()
	}
	return r
}

// Scale multiplies x by 10^n, or divides with truncation when n < 0.
func (x Decimal128) Scale(n int32) (Decimal128, error) {
	neg := x.Sign()
	m := x.abs()
	for n > 0 {
		k := n
		if k > 19 {
			k = 19
		}
		if m.Cmp(maxMagnitude128.Div64(pow10[k])) > 0 {
			return Decimal128{}, moerr.NewOutOfRangeNoCtx("decimal128", "value %s scale %d", x.Format(0), n)
		}
		m = m.Mul64(pow10[k])
		n -= k
	}
	for n < 0 {
		k := -n
		if k > 19 {
			k = 19
		}
		m = m.Div64(pow10[k])
		n += k
	}
	if neg {
		return fromUint128(m).Neg(), nil
	}
	return fromUint128(m), nil
}

func (x Decimal128) ToFloat64(scale int32) float64 {
	m := x.abs()
	f := float64(m.Hi)*(1<<64) + float64(m.Lo)
	if x.Sign() {
		f = -f
	}
	return f / math.Pow10(int(scale))
}

func (x Decimal128) Format(scale int32) string {
	return decimal.NewFromBigInt(x.bigInt(), -scale).StringFixed(scale)
}

func (x Decimal128) bigInt() *big.Int {
	bi := x.abs().Big()
	if x.Sign() {
		bi.Neg(bi)
	}
	return bi
}

func ParseDecimal128(s string, width, scale int32) (Decimal128, error) {
	bi, err := parseScaled(s, width, scale)
	if err != nil {
		return Decimal128{}, err
	}
	if bi.BitLen() > 127 {
		return Decimal128{}, moerr.NewOutOfRangeNoCtx("decimal128", "value '%s'", s)
	}
	x := fromUint128(uint128.FromBig(new(big.Int).Abs(bi)))
	if bi.Sign() < 0 {
		x = x.Neg()
	}
	return x, nil
}

// parseScaled returns round(s * 10^scale) and checks it has at most width digits.
func parseScaled(s string, width, scale int32) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, moerr.NewInvalidInput(context.Background(), "decimal '%s'", s)
	}
	bi := d.Round(scale).Shift(scale).BigInt()
	if width > 0 {
		limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(width)), nil)
		if new(big.Int).Abs(bi).Cmp(limit) >= 0 {
			return nil, moerr.NewOutOfRangeNoCtx("decimal", "value '%s' exceeds %d digits", s, width)
		}
	}
	return bi, nil
}

// abs is the magnitude of x, -2^127 maps to 2^127.
func (x Decimal128) abs() uint128.Uint128 {
	if x.Sign() {
		x = x.Neg()
	}
	return x.bits()
}

func (x Decimal128) bits() uint128.Uint128 {
	return uint128.New(x.B0_63, x.B64_127)
}

func fromUint128(u uint128.Uint128) Decimal128 {
	return Decimal128{B0_63: u.Lo, B64_127: u.Hi}
}

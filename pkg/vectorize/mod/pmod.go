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

package mod

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/moarith/pkg/container/types"
)

// Positive modulo keeps the result in [0, |b|). A negative remainder is
// lifted by |b| once, which never overflows since it lies in (-|b|, 0).
// This matches (a % b + b) % b whenever b > 0. For b < 0 that formula
// keeps the sign of b, e.g. pmod(7, -3) is 1 here and -2 there.

func IntPMod[T constraints.Integer](a, b T) (T, bool) {
	isNull := b == 0
	b += b2i[T](isNull)
	r := a % b
	return r + absInt(b)*b2i[T](r < 0), isNull
}

func FloatPMod(a, b float64) (float64, bool) {
	isNull := b == 0
	b += b2f(isNull)
	ab := math.Abs(b)
	return math.Mod(math.Mod(a, b)+ab, ab), isNull
}

func Decimal64PMod(a, b types.Decimal64) (types.Decimal64, bool) {
	isNull := b.IsZero()
	b = b.Add(types.Decimal64(b2i[int64](isNull)))
	r := a.Rem(b)
	return r + absDecimal64(b)*types.Decimal64(b2i[int64](r.Sign())), isNull
}

func Decimal128PMod(a, b types.Decimal128) (types.Decimal128, bool) {
	isNull := b.IsZero()
	b = b.Add(types.Decimal128{B0_63: b2i[uint64](isNull)})
	return liftDecimal128(a.Rem(b), absDecimal128(b)), isNull
}

func IntPModScalar[T constraints.Integer](xs []T, y T, rs []T, nsp []bool) {
	if fillNulls(nsp, y == 0) {
		return
	}
	xs = xs[:len(rs)]
	ay := absInt(y)
	for i, x := range xs {
		r := x % y
		rs[i] = r + ay*b2i[T](r < 0)
	}
}

func FloatPModScalar(xs []float64, y float64, rs []float64, nsp []bool) {
	if fillNulls(nsp, y == 0) {
		return
	}
	xs = xs[:len(rs)]
	ay := math.Abs(y)
	for i, x := range xs {
		rs[i] = math.Mod(math.Mod(x, y)+ay, ay)
	}
}

func Decimal64PModScalar(xs []types.Decimal64, y types.Decimal64, rs []types.Decimal64, nsp []bool) {
	if fillNulls(nsp, y.IsZero()) {
		return
	}
	xs = xs[:len(rs)]
	ay := absDecimal64(y)
	for i, x := range xs {
		r := x.Rem(y)
		rs[i] = r + ay*types.Decimal64(b2i[int64](r.Sign()))
	}
}

func Decimal128PModScalar(xs []types.Decimal128, y types.Decimal128, rs []types.Decimal128, nsp []bool) {
	if fillNulls(nsp, y.IsZero()) {
		return
	}
	xs = xs[:len(rs)]
	ay := absDecimal128(y)
	for i, x := range xs {
		rs[i] = liftDecimal128(x.Rem(y), ay)
	}
}

// absInt wraps for MinInt, the lifted sum is still right modulo 2^w.
func absInt[T constraints.Integer](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func absDecimal64(v types.Decimal64) types.Decimal64 {
	if v.Sign() {
		return v.Neg()
	}
	return v
}

func absDecimal128(v types.Decimal128) types.Decimal128 {
	if v.Sign() {
		return v.Neg()
	}
	return v
}

// liftDecimal128 adds ay to r when r is negative.
func liftDecimal128(r, ay types.Decimal128) types.Decimal128 {
	m := -b2i[uint64](r.Sign())
	return r.Add(types.Decimal128{B0_63: ay.B0_63 & m, B64_127: ay.B64_127 & m})
}

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

// Package mod implements the null safe remainder kernels behind mod, pmod
// and fmod.
//
// A zero divisor never divides: the scalar entries test it, add the
// verdict back into the divisor and divide by the result, so b == 0 turns
// into b == 1 and the row is reported null. The bulk entries take a
// constant divisor, write its verdict to every position of the mask and
// only then touch the dividends. None of the kernels allocate or keep
// state, they are safe to run concurrently on disjoint buffers.
package mod

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/moarith/pkg/container/types"
)

// IntMod returns a % b, sign follows a. MinInt % -1 is 0.
func IntMod[T constraints.Integer](a, b T) (T, bool) {
	isNull := b == 0
	b += b2i[T](isNull)
	return a % b, isNull
}

// FloatMod returns fmod(a, b). Float32 operands are widened by the caller.
func FloatMod(a, b float64) (float64, bool) {
	isNull := b == 0
	b += b2f(isNull)
	return math.Mod(a, b), isNull
}

// Decimal64Mod returns the remainder of two decimals of the same scale.
// A zero divisor is replaced by one ulp.
func Decimal64Mod(a, b types.Decimal64) (types.Decimal64, bool) {
	isNull := b.IsZero()
	b = b.Add(types.Decimal64(b2i[int64](isNull)))
	return a.Rem(b), isNull
}

func Decimal128Mod(a, b types.Decimal128) (types.Decimal128, bool) {
	isNull := b.IsZero()
	b = b.Add(types.Decimal128{B0_63: b2i[uint64](isNull)})
	return a.Rem(b), isNull
}

// IntModScalar computes rs[i] = xs[i] % y for every i < len(rs). nsp gets
// y == 0 at every position and rs is left untouched in that case.
func IntModScalar[T constraints.Integer](xs []T, y T, rs []T, nsp []bool) {
	if fillNulls(nsp, y == 0) {
		return
	}
	xs = xs[:len(rs)]
	if FastPathEnabled() && intModFast(xs, y, rs) {
		return
	}
	for i, x := range xs {
		rs[i] = x % y
	}
}

func FloatModScalar(xs []float64, y float64, rs []float64, nsp []bool) {
	if fillNulls(nsp, y == 0) {
		return
	}
	xs = xs[:len(rs)]
	for i, x := range xs {
		rs[i] = math.Mod(x, y)
	}
}

func Decimal64ModScalar(xs []types.Decimal64, y types.Decimal64, rs []types.Decimal64, nsp []bool) {
	if fillNulls(nsp, y.IsZero()) {
		return
	}
	xs = xs[:len(rs)]
	for i, x := range xs {
		rs[i] = x.Rem(y)
	}
}

func Decimal128ModScalar(xs []types.Decimal128, y types.Decimal128, rs []types.Decimal128, nsp []bool) {
	if fillNulls(nsp, y.IsZero()) {
		return
	}
	xs = xs[:len(rs)]
	for i, x := range xs {
		rs[i] = x.Rem(y)
	}
}

// fillNulls writes isNull to every mask position and returns it.
func fillNulls(nsp []bool, isNull bool) bool {
	for i := range nsp {
		nsp[i] = isNull
	}
	return isNull
}

// b2i maps false to 0 and true to 1, the compiler lowers it to a setcc.
func b2i[T constraints.Integer](b bool) T {
	var i T
	if b {
		i = 1
	}
	return i
}

func b2f(b bool) float64 {
	var f float64
	if b {
		f = 1
	}
	return f
}

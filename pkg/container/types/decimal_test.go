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
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
)

func TestParse64(t *testing.T) {
	x, err := ParseDecimal64("10.50", 18, 2)
	require.NoError(t, err)
	require.Equal(t, Decimal64(1050), x)
	require.Equal(t, "10.50", x.Format(2))

	x, err = ParseDecimal64("-0.005", 18, 2)
	require.NoError(t, err)
	require.Equal(t, "-0.01", x.Format(2))

	_, err = ParseDecimal64("abc", 18, 2)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	_, err = ParseDecimal64("1000", 3, 0)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))
}

func TestParse128(t *testing.T) {
	s := "-12345678901234567890123456.789"
	x, err := ParseDecimal128(s, 38, 3)
	require.NoError(t, err)
	require.True(t, x.Sign())
	require.Equal(t, s, x.Format(3))

	x, err = ParseDecimal128("99999999999999999999999999999999999999", 38, 0)
	require.NoError(t, err)
	require.Equal(t, 0, x.Compare(Decimal128Max))
}

func TestCompare(t *testing.T) {
	require.Equal(t, -1, Decimal64(-3).Compare(2))
	require.Equal(t, 0, Decimal64(2).Compare(2))
	require.Equal(t, 1, Decimal128FromInt64(1).Compare(Decimal128FromInt64(-1)))
	require.Equal(t, -1, Decimal128Min.Compare(Decimal128Max))
	require.Equal(t, 0, Decimal128FromInt64(-7).Compare(Decimal64(-7).ToDecimal128()))
}

func TestDecimalFloat(t *testing.T) {
	require.Equal(t, 10.5, Decimal64(1050).ToFloat64(2))
	require.Equal(t, -0.25, Decimal128FromInt64(-25).ToFloat64(2))
	require.Equal(t, math.Pow(2, 64), Decimal128{B64_127: 1}.ToFloat64(0))
}

func TestDecimalAddNeg(t *testing.T) {
	require.Equal(t, Decimal64(5), Decimal64(2).Add(3))
	require.True(t, Decimal128FromInt64(-1).Add(Decimal128FromInt64(1)).IsZero())
	x := Decimal128{B0_63: math.MaxUint64}
	require.Equal(t, Decimal128{B64_127: 1}, x.Add(Decimal128FromInt64(1)))
	require.Equal(t, Decimal128FromInt64(-5), Decimal128FromInt64(5).Neg())
}

func TestDecimal64Rem(t *testing.T) {
	tests := []struct {
		x, y, want Decimal64
	}{
		{1050, 300, 150},
		{-1050, 300, -150},
		{1050, -300, 150},
		{math.MinInt64, -1, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.x.Rem(tt.y))
	}
}

func TestDecimal128Rem(t *testing.T) {
	require.Equal(t, Decimal128FromInt64(150), Decimal128FromInt64(1050).Rem(Decimal128FromInt64(300)))
	require.Equal(t, Decimal128FromInt64(-150), Decimal128FromInt64(-1050).Rem(Decimal128FromInt64(300)))
	require.True(t, Decimal128Min.Rem(Decimal128Min).IsZero())

	rnd := rand.New(rand.NewSource(42))
	random := func() Decimal128 {
		x := Decimal128{B0_63: rnd.Uint64(), B64_127: rnd.Uint64() >> uint(rnd.Intn(64))}
		if rnd.Intn(2) == 0 {
			x = x.Neg()
		}
		return x
	}
	for i := 0; i < 10000; i++ {
		x, y := random(), random()
		if i%3 == 0 {
			y = Decimal128FromInt64(rnd.Int63n(1<<40) + 1)
		}
		if y.IsZero() {
			continue
		}
		want := new(big.Int).Rem(x.bigInt(), y.bigInt())
		require.Equal(t, 0, want.Cmp(x.Rem(y).bigInt()), "%s rem %s", x.Format(0), y.Format(0))
	}
}

func TestDecimalScale(t *testing.T) {
	x, err := Decimal64(105).Scale(2)
	require.NoError(t, err)
	require.Equal(t, Decimal64(10500), x)
	x, err = Decimal64(-10599).Scale(-2)
	require.NoError(t, err)
	require.Equal(t, Decimal64(-105), x)
	_, err = Decimal64Max.Scale(1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	y, err := Decimal128FromInt64(-3).Scale(30)
	require.NoError(t, err)
	require.Equal(t, "-3000000000000000000000000000000", y.Format(0))
	y, err = y.Scale(-29)
	require.NoError(t, err)
	require.Equal(t, Decimal128FromInt64(-30), y)
	_, err = Decimal128Max.Scale(2)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))
}

func TestDecimal128Magnitude(t *testing.T) {
	minValue := Decimal128{B64_127: 1 << 63}
	require.True(t, minValue.Sign())
	require.Equal(t, minValue, minValue.Neg())
	want := new(big.Int).Rem(minValue.bigInt(), big.NewInt(3))
	require.Equal(t, 0, want.Cmp(minValue.Rem(Decimal128FromInt64(3)).bigInt()))
	require.Equal(t, "-170141183460469231731687303715884105728", minValue.Format(0))

	// 10 * x fits exactly up to 2^127 - 1
	x, err := ParseDecimal128("17014118346046923173168730371588410572", 0, 0)
	require.NoError(t, err)
	y, err := x.Scale(1)
	require.NoError(t, err)
	require.Equal(t, "170141183460469231731687303715884105720", y.Format(0))
	_, err = x.Add(Decimal128FromInt64(1)).Scale(1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))
	y, err = x.Neg().Scale(1)
	require.NoError(t, err)
	require.Equal(t, "-170141183460469231731687303715884105720", y.Format(0))

	require.Equal(t, Decimal128FromInt64(-1), Decimal128FromInt64(0).Add(Decimal128FromInt64(-1)))
	require.Equal(t, Decimal128{B0_63: 0, B64_127: 1}, Decimal128{B0_63: math.MaxUint64}.Add(Decimal128FromInt64(1)))
}

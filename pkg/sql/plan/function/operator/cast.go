// Copyright 2022 Matrix Origin
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

package operator

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
)

// The casts below bring one operand into the result domain picked by
// types.ModResultType. Values are converted with Go conversion rules,
// a uint64 above MaxInt64 wraps when the result is int64.

type castFunc func(ctx context.Context, v *vector.Vector, typ types.Type) (*vector.Vector, error)

type numeric interface {
	constraints.Integer | constraints.Float
}

func castInteger[T constraints.Integer](ctx context.Context, v *vector.Vector, typ types.Type) (*vector.Vector, error) {
	if v.Typ.Oid == typ.Oid {
		return v, nil
	}
	var rs []T
	switch col := v.Col.(type) {
	case []int8:
		rs = convertNumbers[int8, T](col)
	case []int16:
		rs = convertNumbers[int16, T](col)
	case []int32:
		rs = convertNumbers[int32, T](col)
	case []int64:
		rs = convertNumbers[int64, T](col)
	case []uint8:
		rs = convertNumbers[uint8, T](col)
	case []uint16:
		rs = convertNumbers[uint16, T](col)
	case []uint32:
		rs = convertNumbers[uint32, T](col)
	case []uint64:
		rs = convertNumbers[uint64, T](col)
	default:
		return nil, moerr.NewNotSupported(ctx, "cast %s to %s", v.Typ, typ)
	}
	return vector.NewLike(v, typ, rs), nil
}

func castFloat64(ctx context.Context, v *vector.Vector, typ types.Type) (*vector.Vector, error) {
	if v.Typ.Oid == types.T_float64 {
		return v, nil
	}
	var rs []float64
	switch col := v.Col.(type) {
	case []int8:
		rs = convertNumbers[int8, float64](col)
	case []int16:
		rs = convertNumbers[int16, float64](col)
	case []int32:
		rs = convertNumbers[int32, float64](col)
	case []int64:
		rs = convertNumbers[int64, float64](col)
	case []uint8:
		rs = convertNumbers[uint8, float64](col)
	case []uint16:
		rs = convertNumbers[uint16, float64](col)
	case []uint32:
		rs = convertNumbers[uint32, float64](col)
	case []uint64:
		rs = convertNumbers[uint64, float64](col)
	case []float32:
		rs = convertNumbers[float32, float64](col)
	case []types.Decimal64:
		rs = make([]float64, len(col))
		for i, x := range col {
			rs[i] = x.ToFloat64(v.Typ.Scale)
		}
	case []types.Decimal128:
		rs = make([]float64, len(col))
		for i, x := range col {
			rs[i] = x.ToFloat64(v.Typ.Scale)
		}
	default:
		return nil, moerr.NewNotSupported(ctx, "cast %s to %s", v.Typ, typ)
	}
	return vector.NewLike(v, typ, rs), nil
}

func castDecimal64(ctx context.Context, v *vector.Vector, typ types.Type) (*vector.Vector, error) {
	var err error
	var rs []types.Decimal64

	switch col := v.Col.(type) {
	case []types.Decimal64:
		if v.Typ.Scale == typ.Scale {
			return v, nil
		}
		rs = make([]types.Decimal64, len(col))
		for i, x := range col {
			if rs[i], err = x.Scale(typ.Scale - v.Typ.Scale); err != nil {
				return nil, err
			}
		}
	default:
		ints, ok := int64Values(v)
		if !ok {
			return nil, moerr.NewNotSupported(ctx, "cast %s to %s", v.Typ, typ)
		}
		rs = make([]types.Decimal64, len(ints))
		for i, x := range ints {
			if rs[i], err = types.Decimal64FromInt64(x).Scale(typ.Scale); err != nil {
				return nil, err
			}
		}
	}
	return vector.NewLike(v, typ, rs), nil
}

func castDecimal128(ctx context.Context, v *vector.Vector, typ types.Type) (*vector.Vector, error) {
	var err error
	var rs []types.Decimal128

	diff := typ.Scale - v.Typ.Scale
	switch col := v.Col.(type) {
	case []types.Decimal128:
		if diff == 0 {
			return v, nil
		}
		rs = make([]types.Decimal128, len(col))
		for i, x := range col {
			if rs[i], err = x.Scale(diff); err != nil {
				return nil, err
			}
		}
	case []types.Decimal64:
		rs = make([]types.Decimal128, len(col))
		for i, x := range col {
			if rs[i], err = x.ToDecimal128().Scale(diff); err != nil {
				return nil, err
			}
		}
	case []uint64:
		rs = make([]types.Decimal128, len(col))
		for i, x := range col {
			if rs[i], err = types.Decimal128FromUint64(x).Scale(typ.Scale); err != nil {
				return nil, err
			}
		}
	default:
		ints, ok := int64Values(v)
		if !ok {
			return nil, moerr.NewNotSupported(ctx, "cast %s to %s", v.Typ, typ)
		}
		rs = make([]types.Decimal128, len(ints))
		for i, x := range ints {
			if rs[i], err = types.Decimal128FromInt64(x).Scale(typ.Scale); err != nil {
				return nil, err
			}
		}
	}
	return vector.NewLike(v, typ, rs), nil
}

// int64Values widens every integer column except uint64.
func int64Values(v *vector.Vector) ([]int64, bool) {
	switch col := v.Col.(type) {
	case []int8:
		return convertNumbers[int8, int64](col), true
	case []int16:
		return convertNumbers[int16, int64](col), true
	case []int32:
		return convertNumbers[int32, int64](col), true
	case []int64:
		return col, true
	case []uint8:
		return convertNumbers[uint8, int64](col), true
	case []uint16:
		return convertNumbers[uint16, int64](col), true
	case []uint32:
		return convertNumbers[uint32, int64](col), true
	}
	return nil, false
}

func convertNumbers[F, T numeric](xs []F) []T {
	rs := make([]T, len(xs))
	for i, x := range xs {
		rs[i] = T(x)
	}
	return rs
}

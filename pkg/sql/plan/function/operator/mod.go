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
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/nulls"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/vectorize/mod"
	"github.com/matrixorigin/moarith/pkg/vm/process"
)

// Mod is the truncating remainder, the sign follows the dividend.
func Mod(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return modWithOp(vs, proc, mod.Modulo)
}

// PMod is the remainder lifted into [0, |divisor|).
func PMod(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return modWithOp(vs, proc, mod.PositiveModulo)
}

func modWithOp(vs []*vector.Vector, proc *process.Process, op mod.Op) (*vector.Vector, error) {
	lv, rv := vs[0], vs[1]
	typ, err := types.ModResultType(lv.Typ, rv.Typ)
	if err != nil {
		return nil, err
	}
	if lv.IsScalarNull() || rv.IsScalarNull() {
		vec := proc.AllocScalarNullVector(typ)
		vec.SetLength(maxLength(lv, rv))
		return vec, nil
	}
	switch typ.Oid {
	case types.T_int8:
		return modInteger[int8](lv, rv, proc, typ, op)
	case types.T_int16:
		return modInteger[int16](lv, rv, proc, typ, op)
	case types.T_int32:
		return modInteger[int32](lv, rv, proc, typ, op)
	case types.T_int64:
		return modInteger[int64](lv, rv, proc, typ, op)
	case types.T_uint8:
		return modInteger[uint8](lv, rv, proc, typ, op)
	case types.T_uint16:
		return modInteger[uint16](lv, rv, proc, typ, op)
	case types.T_uint32:
		return modInteger[uint32](lv, rv, proc, typ, op)
	case types.T_uint64:
		return modInteger[uint64](lv, rv, proc, typ, op)
	case types.T_float64:
		return modCast(lv, rv, proc, typ, mod.Float(op), castFloat64)
	case types.T_decimal64:
		return modCast(lv, rv, proc, typ, mod.Decimal64(op), castDecimal64)
	case types.T_decimal128:
		return modCast(lv, rv, proc, typ, mod.Decimal128(op), castDecimal128)
	}
	return nil, moerr.NewNotSupported(proc.GetContext(), "%s(%s, %s)", op, lv.Typ, rv.Typ)
}

func modInteger[T constraints.Integer](lv, rv *vector.Vector, proc *process.Process, typ types.Type, op mod.Op) (*vector.Vector, error) {
	return modCast(lv, rv, proc, typ, mod.Integer[T](op), castInteger[T])
}

func modCast[T types.Number](lv, rv *vector.Vector, proc *process.Process, typ types.Type, k mod.Kernel[T], cast castFunc) (*vector.Vector, error) {
	var err error

	ctx := proc.GetContext()
	if lv, err = cast(ctx, lv, typ); err != nil {
		return nil, err
	}
	if rv, err = cast(ctx, rv, typ); err != nil {
		return nil, err
	}
	return modVectors(lv, rv, proc, typ, k)
}

// modVectors evaluates k over two operands already in the result domain.
// Only a flat dividend with a constant divisor reaches the bulk entry, the
// other shapes go row by row through the scalar entry.
func modVectors[T types.Number](lv, rv *vector.Vector, proc *process.Process, typ types.Type, k mod.Kernel[T]) (*vector.Vector, error) {
	lvs, rvs := vector.MustTCols[T](lv), vector.MustTCols[T](rv)
	switch {
	case lv.IsScalar() && rv.IsScalar():
		r, isNull := k.Scalar(lvs[0], rvs[0])
		vec := vector.NewConst(typ, r, maxLength(lv, rv))
		if isNull {
			nulls.Add(vec.Nsp, 0)
		}
		return vec, nil
	case !lv.IsScalar() && rv.IsScalar():
		vec, err := process.AllocVector[T](proc, typ, len(lvs))
		if err != nil {
			return nil, err
		}
		rs := vector.MustTCols[T](vec)
		mask := make([]bool, len(lvs))
		k.Bulk(lvs, rvs[0], rs, mask)
		nulls.Set(vec.Nsp, lv.Nsp)
		nulls.AddMask(vec.Nsp, mask)
		return vec, nil
	case lv.IsScalar() && !rv.IsScalar():
		vec, err := process.AllocVector[T](proc, typ, len(rvs))
		if err != nil {
			return nil, err
		}
		rs := vector.MustTCols[T](vec)
		mask := make([]bool, len(rvs))
		x := lvs[0]
		for i, y := range rvs {
			rs[i], mask[i] = k.Scalar(x, y)
		}
		nulls.Set(vec.Nsp, rv.Nsp)
		nulls.AddMask(vec.Nsp, mask)
		return vec, nil
	default:
		if len(lvs) != len(rvs) {
			return nil, moerr.NewInternalError(proc.GetContext(), "%s operands have %d and %d rows", k.Name(), len(lvs), len(rvs))
		}
		vec, err := process.AllocVector[T](proc, typ, len(lvs))
		if err != nil {
			return nil, err
		}
		rs := vector.MustTCols[T](vec)
		mask := make([]bool, len(lvs))
		for i, x := range lvs {
			rs[i], mask[i] = k.Scalar(x, rvs[i])
		}
		nulls.Or(lv.Nsp, rv.Nsp, vec.Nsp)
		nulls.AddMask(vec.Nsp, mask)
		return vec, nil
	}
}

func maxLength(lv, rv *vector.Vector) int {
	n := vector.Length(lv)
	if m := vector.Length(rv); m > n {
		return m
	}
	return n
}

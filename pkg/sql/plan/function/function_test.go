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

package function

import (
	"context"
	"math"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/nulls"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/testutil"
	"github.com/matrixorigin/moarith/pkg/vm/process"
)

func TestGetFunctionByName(t *testing.T) {
	ctx := context.TODO()
	int32Typ, uint8Typ := types.T_int32.ToType(), types.T_uint8.ToType()

	f, typ, err := GetFunctionByName(ctx, "mod", []types.Type{int32Typ, uint8Typ})
	require.NoError(t, err)
	require.True(t, f.IsBinaryOperator())
	require.True(t, f.ProducesNull())
	require.Equal(t, types.T_int32, typ.Oid)

	_, typ, err = GetFunctionByName(ctx, "pmod", []types.Type{types.T_float32.ToType(), uint8Typ})
	require.NoError(t, err)
	require.Equal(t, types.T_float64, typ.Oid)

	_, _, err = GetFunctionByName(ctx, "rem", []types.Type{int32Typ, int32Typ})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrFunctionNotExists))

	_, _, err = GetFunctionByName(ctx, "mod", []types.Type{types.T_varchar.ToType(), int32Typ})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotSupported))

	_, _, err = GetFunctionByName(ctx, "mod", []types.Type{int32Typ})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotSupported))
}

func TestAlias(t *testing.T) {
	target, ok := IsAlias("fmod")
	require.True(t, ok)
	require.Equal(t, "mod", target)
	_, ok = IsAlias("mod")
	require.False(t, ok)
	require.Equal(t, []string{"fmod", "mod", "pmod"}, FunctionNames())
}

func TestAliasBitIdentical(t *testing.T) {
	ctx := context.TODO()
	inputs := [][]*vector.Vector{
		{testutil.MakeFloat64Vector([]float64{5.5, -5.5, math.Inf(1), 0, math.SmallestNonzeroFloat64}, []uint64{3}), testutil.MakeScalarFloat64(2, 5)},
		{testutil.MakeInt64Vector([]int64{math.MinInt64, 7, -7}, nil), testutil.MakeInt64Vector([]int64{-1, 0, 3}, nil)},
		{testutil.MakeScalarInt64(-9, 2), testutil.MakeScalarInt64(4, 2)},
	}
	for _, vs := range inputs {
		args := []types.Type{vs[0].Typ, vs[1].Typ}
		mf, _, err := GetFunctionByName(ctx, "mod", args)
		require.NoError(t, err)
		ff, _, err := GetFunctionByName(ctx, "fmod", args)
		require.NoError(t, err)

		want, err := mf.VecFn(vs, testutil.NewProcess())
		require.NoError(t, err)
		got, err := ff.VecFn(vs, testutil.NewProcess())
		require.NoError(t, err)
		requireBitIdentical(t, want, got)
	}
}

func requireBitIdentical(t *testing.T, want, got *vector.Vector) {
	require.True(t, want.Typ.Eq(got.Typ))
	require.Equal(t, want.IsScalar(), got.IsScalar())
	require.Equal(t, vector.Length(want), vector.Length(got))
	for i := 0; i < vector.Length(want); i++ {
		require.Equal(t, nulls.Contains(want.Nsp, uint64(i)), nulls.Contains(got.Nsp, uint64(i)))
	}
	if fs, ok := want.Col.([]float64); ok {
		gs := vector.MustTCols[float64](got)
		require.Equal(t, len(fs), len(gs))
		for i := range fs {
			require.Equal(t, math.Float64bits(fs[i]), math.Float64bits(gs[i]))
		}
		return
	}
	require.Equal(t, want.Col, got.Col)
}

func TestRegister(t *testing.T) {
	ctx := context.TODO()
	stubs := gostub.Stub(&functionRegister, map[string][]Function{}).Stub(&aliasRegister, map[string]string{})
	defer stubs.Reset()

	fn := func(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) { return vs[0], nil }
	check := func([]types.Type) bool { return true }

	err := appendFunction(ctx, "f", Function{Index: 0, Fn: fn})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidFuncDefn))
	err = appendFunction(ctx, "f", Function{Index: 0, TypeCheckFn: check})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidFuncDefn))

	require.NoError(t, appendFunction(ctx, "f", Function{Index: 0, Args: []types.T{types.T_int8}, TypeCheckFn: check, Fn: fn}))
	err = appendFunction(ctx, "f", Function{Index: 0, Args: []types.T{types.T_int16}, TypeCheckFn: check, Fn: fn})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidFuncDefn))
	err = appendFunction(ctx, "f", Function{Index: 1, Args: []types.T{types.T_int8}, TypeCheckFn: check, Fn: fn})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrDuplicateFunc))

	require.NoError(t, registerAlias(ctx, "g", "f"))
	require.True(t, moerr.IsMoErrCode(registerAlias(ctx, "g", "f"), moerr.ErrDuplicateFunc))
	require.True(t, moerr.IsMoErrCode(registerAlias(ctx, "f", "f"), moerr.ErrDuplicateFunc))
	require.True(t, moerr.IsMoErrCode(registerAlias(ctx, "h", "nope"), moerr.ErrInvalidFuncDefn))
	err = appendFunction(ctx, "g", Function{Index: 0, TypeCheckFn: check, Fn: fn})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrDuplicateFunc))

	f, typ, err := GetFunctionByName(ctx, "g", []types.Type{types.T_int8.ToType()})
	require.NoError(t, err)
	require.Equal(t, types.T_int8, typ.Oid)
	_, err = Function{}.VecFn(nil, testutil.NewProcess())
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidFuncDefn))
	require.NotNil(t, f.Fn)
}

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

package testutil

import (
	"context"
	"math/rand"

	"github.com/matrixorigin/moarith/pkg/container/batch"
	"github.com/matrixorigin/moarith/pkg/container/nulls"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/vm/process"
)

func NewProcess() *process.Process {
	return process.New(context.TODO(), "test", process.Limitation{
		Size:        1 << 30,
		BatchRows:   8192,
		Parallelism: 4,
	})
}

func NewProcessWithLimit(size int64) *process.Process {
	return process.New(context.TODO(), "test", process.Limitation{Size: size})
}

func MakeVector[T any](typ types.Type, values []T, nsp []uint64) *vector.Vector {
	vec := vector.NewWithData(typ, values, nil)
	nulls.Add(vec.Nsp, nsp...)
	return vec
}

func MakeInt8Vector(values []int8, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_int8.ToType(), values, nsp)
}

func MakeInt16Vector(values []int16, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_int16.ToType(), values, nsp)
}

func MakeInt32Vector(values []int32, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_int32.ToType(), values, nsp)
}

func MakeInt64Vector(values []int64, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_int64.ToType(), values, nsp)
}

func MakeUint8Vector(values []uint8, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_uint8.ToType(), values, nsp)
}

func MakeUint32Vector(values []uint32, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_uint32.ToType(), values, nsp)
}

func MakeUint64Vector(values []uint64, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_uint64.ToType(), values, nsp)
}

func MakeFloat32Vector(values []float32, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_float32.ToType(), values, nsp)
}

func MakeFloat64Vector(values []float64, nsp []uint64) *vector.Vector {
	return MakeVector(types.T_float64.ToType(), values, nsp)
}

// MakeDecimal64Vector parses values at the scale of a decimal64(18, scale).
func MakeDecimal64Vector(values []string, nsp []uint64, scale int32) *vector.Vector {
	typ := types.New(types.T_decimal64, types.MaxDecimal64Width, scale)
	ds := make([]types.Decimal64, len(values))
	for i, s := range values {
		d, err := types.ParseDecimal64(s, typ.Width, scale)
		if err != nil {
			panic(err)
		}
		ds[i] = d
	}
	return MakeVector(typ, ds, nsp)
}

func MakeDecimal128Vector(values []string, nsp []uint64, scale int32) *vector.Vector {
	typ := types.New(types.T_decimal128, types.MaxDecimal128Width, scale)
	ds := make([]types.Decimal128, len(values))
	for i, s := range values {
		d, err := types.ParseDecimal128(s, typ.Width, scale)
		if err != nil {
			panic(err)
		}
		ds[i] = d
	}
	return MakeVector(typ, ds, nsp)
}

func MakeScalar[T any](typ types.Type, value T, length int) *vector.Vector {
	return vector.NewConst(typ, value, length)
}

func MakeScalarInt64(value int64, length int) *vector.Vector {
	return MakeScalar(types.T_int64.ToType(), value, length)
}

func MakeScalarFloat64(value float64, length int) *vector.Vector {
	return MakeScalar(types.T_float64.ToType(), value, length)
}

func MakeScalarNull(typ types.Type, length int) *vector.Vector {
	return vector.NewConstNull(typ, length)
}

// NewBatch returns a batch of n rows per type, values are random when
// random is set and the row number otherwise.
func NewBatch(ts []types.Type, random bool, n int) *batch.Batch {
	bat := batch.New(make([]string, len(ts)))
	for i, typ := range ts {
		bat.Vecs[i] = NewVector(n, typ, random)
	}
	return bat
}

func NewVector(n int, typ types.Type, random bool) *vector.Vector {
	switch typ.Oid {
	case types.T_int8:
		return newVector(n, typ, random, func(v int64) int8 { return int8(v) })
	case types.T_int16:
		return newVector(n, typ, random, func(v int64) int16 { return int16(v) })
	case types.T_int32:
		return newVector(n, typ, random, func(v int64) int32 { return int32(v) })
	case types.T_int64:
		return newVector(n, typ, random, func(v int64) int64 { return v })
	case types.T_uint8:
		return newVector(n, typ, random, func(v int64) uint8 { return uint8(v) })
	case types.T_uint16:
		return newVector(n, typ, random, func(v int64) uint16 { return uint16(v) })
	case types.T_uint32:
		return newVector(n, typ, random, func(v int64) uint32 { return uint32(v) })
	case types.T_uint64:
		return newVector(n, typ, random, func(v int64) uint64 { return uint64(v) })
	case types.T_float32:
		return newVector(n, typ, random, func(v int64) float32 { return float32(v) / 4 })
	case types.T_float64:
		return newVector(n, typ, random, func(v int64) float64 { return float64(v) / 4 })
	case types.T_decimal64:
		return newVector(n, typ, random, func(v int64) types.Decimal64 { return types.Decimal64(v) })
	case types.T_decimal128:
		return newVector(n, typ, random, types.Decimal128FromInt64)
	}
	panic("unsupported vector type " + typ.String())
}

func newVector[T any](n int, typ types.Type, random bool, fn func(int64) T) *vector.Vector {
	vs := make([]T, n)
	for i := range vs {
		v := int64(i)
		if random {
			v = rand.Int63n(1<<20) - 1<<19
		}
		vs[i] = fn(v)
	}
	return vector.NewWithData(typ, vs, nil)
}

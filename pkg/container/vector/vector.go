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

package vector

import (
	"fmt"
	"strconv"

	"github.com/matrixorigin/moarith/pkg/container/nulls"
	"github.com/matrixorigin/moarith/pkg/container/types"
)

// Vector represent a column
type Vector struct {
	// type represent the type of column
	Typ types.Type
	// Col is a []T matching Typ.Oid, a constant vector holds one element
	Col interface{}
	Nsp *nulls.Nulls // nulls list

	isConst bool
	// length of a constant vector, flat vectors use len(Col)
	length int
}

func New(typ types.Type) *Vector {
	return &Vector{
		Typ: typ,
		Col: emptyCol(typ.Oid),
		Nsp: &nulls.Nulls{},
	}
}

// NewConst returns a vector of length rows all equal to val.
func NewConst[T any](typ types.Type, val T, length int) *Vector {
	return &Vector{
		Typ:     typ,
		Col:     []T{val},
		Nsp:     &nulls.Nulls{},
		isConst: true,
		length:  length,
	}
}

// NewConstNull returns a vector of length rows all NULL.
func NewConstNull(typ types.Type, length int) *Vector {
	v := &Vector{
		Typ:     typ,
		Col:     emptyCol(typ.Oid),
		Nsp:     &nulls.Nulls{},
		isConst: true,
		length:  length,
	}
	nulls.Add(v.Nsp, 0)
	return v
}

// NewWithData wraps col, isNulls marks the null rows and may be nil.
func NewWithData[T any](typ types.Type, col []T, isNulls []bool) *Vector {
	v := &Vector{
		Typ: typ,
		Col: col,
		Nsp: &nulls.Nulls{},
	}
	nulls.AddMask(v.Nsp, isNulls)
	return v
}

// PreAlloc returns a flat vector with rows zero values.
func PreAlloc[T any](typ types.Type, rows int) *Vector {
	return &Vector{
		Typ: typ,
		Col: make([]T, rows),
		Nsp: &nulls.Nulls{},
	}
}

func MustTCols[T any](v *Vector) []T {
	if t, ok := v.Col.([]T); ok {
		return t
	}
	panic(fmt.Sprintf("unexpected column %T for %s", v.Col, v.Typ))
}

func SetCol(v *Vector, col interface{}) {
	v.Col = col
}

func Length(v *Vector) int {
	if v.isConst {
		return v.length
	}
	return colLength(v.Col)
}

func (v *Vector) IsScalar() bool {
	return v.isConst
}

// IsScalarNull returns true if v is a constant NULL.
func (v *Vector) IsScalarNull() bool {
	return v.isConst && nulls.Contains(v.Nsp, 0)
}

// SetLength resizes a constant vector, used when a constant operand meets a batch.
func (v *Vector) SetLength(n int) {
	if v.isConst {
		v.length = n
	}
}

// GetString renders one row for display, NULL rows render as "NULL".
func (v *Vector) GetString(row int) string {
	if v.isConst {
		row = 0
	}
	if nulls.Contains(v.Nsp, uint64(row)) {
		return "NULL"
	}
	switch col := v.Col.(type) {
	case []int8:
		return strconv.FormatInt(int64(col[row]), 10)
	case []int16:
		return strconv.FormatInt(int64(col[row]), 10)
	case []int32:
		return strconv.FormatInt(int64(col[row]), 10)
	case []int64:
		return strconv.FormatInt(col[row], 10)
	case []uint8:
		return strconv.FormatUint(uint64(col[row]), 10)
	case []uint16:
		return strconv.FormatUint(uint64(col[row]), 10)
	case []uint32:
		return strconv.FormatUint(uint64(col[row]), 10)
	case []uint64:
		return strconv.FormatUint(col[row], 10)
	case []float32:
		return strconv.FormatFloat(float64(col[row]), 'g', -1, 32)
	case []float64:
		return strconv.FormatFloat(col[row], 'g', -1, 64)
	case []types.Decimal64:
		return col[row].Format(v.Typ.Scale)
	case []types.Decimal128:
		return col[row].Format(v.Typ.Scale)
	case []bool:
		return strconv.FormatBool(col[row])
	case []string:
		return col[row]
	}
	panic(fmt.Sprintf("unexpected column %T", v.Col))
}

func (v *Vector) String() string {
	n := Length(v)
	if v.isConst && n > 1 {
		n = 1
	}
	s := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += v.GetString(i)
	}
	return s + "]"
}

func emptyCol(oid types.T) interface{} {
	switch oid {
	case types.T_bool:
		return []bool{}
	case types.T_int8:
		return []int8{}
	case types.T_int16:
		return []int16{}
	case types.T_int32:
		return []int32{}
	case types.T_int64:
		return []int64{}
	case types.T_uint8:
		return []uint8{}
	case types.T_uint16:
		return []uint16{}
	case types.T_uint32:
		return []uint32{}
	case types.T_uint64:
		return []uint64{}
	case types.T_float32:
		return []float32{}
	case types.T_float64:
		return []float64{}
	case types.T_decimal64:
		return []types.Decimal64{}
	case types.T_decimal128:
		return []types.Decimal128{}
	case types.T_char, types.T_varchar:
		return []string{}
	}
	return nil
}

func colLength(col interface{}) int {
	switch col := col.(type) {
	case []bool:
		return len(col)
	case []int8:
		return len(col)
	case []int16:
		return len(col)
	case []int32:
		return len(col)
	case []int64:
		return len(col)
	case []uint8:
		return len(col)
	case []uint16:
		return len(col)
	case []uint32:
		return len(col)
	case []uint64:
		return len(col)
	case []float32:
		return len(col)
	case []float64:
		return len(col)
	case []types.Decimal64:
		return len(col)
	case []types.Decimal128:
		return len(col)
	case []string:
		return len(col)
	}
	return 0
}

// NewLike returns a vector with v's shape and nulls over a new column.
func NewLike(v *Vector, typ types.Type, col interface{}) *Vector {
	return &Vector{
		Typ:     typ,
		Col:     col,
		Nsp:     v.Nsp,
		isConst: v.isConst,
		length:  v.length,
	}
}

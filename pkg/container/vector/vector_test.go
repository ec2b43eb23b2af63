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
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/matrixorigin/moarith/pkg/container/types"
)

func TestVector(t *testing.T) {
	convey.Convey("flat vector", t, func() {
		v := NewWithData(types.T_int32.ToType(), []int32{1, -2, 3}, []bool{false, true, false})
		convey.So(Length(v), convey.ShouldEqual, 3)
		convey.So(v.IsScalar(), convey.ShouldBeFalse)
		convey.So(v.GetString(0), convey.ShouldEqual, "1")
		convey.So(v.GetString(1), convey.ShouldEqual, "NULL")
		convey.So(v.String(), convey.ShouldEqual, "[1 NULL 3]")
		convey.So(MustTCols[int32](v), convey.ShouldResemble, []int32{1, -2, 3})
		convey.So(func() { MustTCols[int64](v) }, convey.ShouldPanic)
	})

	convey.Convey("const vector", t, func() {
		v := NewConst(types.T_float64.ToType(), 2.5, 4)
		convey.So(Length(v), convey.ShouldEqual, 4)
		convey.So(v.IsScalar(), convey.ShouldBeTrue)
		convey.So(v.IsScalarNull(), convey.ShouldBeFalse)
		convey.So(v.GetString(3), convey.ShouldEqual, "2.5")
		v.SetLength(10)
		convey.So(Length(v), convey.ShouldEqual, 10)

		n := NewConstNull(types.T_int8.ToType(), 2)
		convey.So(n.IsScalarNull(), convey.ShouldBeTrue)
		convey.So(n.GetString(1), convey.ShouldEqual, "NULL")
	})

	convey.Convey("decimal and prealloc", t, func() {
		typ := types.New(types.T_decimal64, 18, 2)
		v := PreAlloc[types.Decimal64](typ, 2)
		MustTCols[types.Decimal64](v)[1] = -150
		convey.So(v.String(), convey.ShouldEqual, "[0.00 -1.50]")

		w := New(types.T_uint16.ToType())
		convey.So(Length(w), convey.ShouldEqual, 0)
		SetCol(w, []uint16{7})
		convey.So(w.GetString(0), convey.ShouldEqual, "7")
	})
}

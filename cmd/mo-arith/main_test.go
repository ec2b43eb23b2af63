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

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/config"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/sql/colexec/projection"
	"github.com/matrixorigin/moarith/pkg/testutil"
)

func TestParseType(t *testing.T) {
	ctx := context.Background()

	typ, err := parseType(ctx, "INT", 0)
	require.NoError(t, err)
	require.Equal(t, types.T_int32, typ.Oid)

	typ, err = parseType(ctx, "decimal64", 4)
	require.NoError(t, err)
	require.Equal(t, int32(types.MaxDecimal64Width), typ.Width)
	require.Equal(t, int32(4), typ.Scale)

	_, err = parseType(ctx, "decimal64", 19)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
	_, err = parseType(ctx, "varchar", 0)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
}

func TestParseVector(t *testing.T) {
	ctx := context.Background()

	vec, err := parseVector(ctx, types.New(types.T_int8, 0, 0), []string{"1", "NULL", "-128", ""}, false)
	require.NoError(t, err)
	require.Equal(t, "[1 NULL -128 NULL]", vec.String())

	vec, err = parseVector(ctx, types.New(types.T_decimal128, 38, 2), []string{"1.5", "\\N"}, false)
	require.NoError(t, err)
	require.Equal(t, "[1.50 NULL]", vec.String())

	_, err = parseVector(ctx, types.New(types.T_int8, 0, 0), []string{"128"}, false)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	_, err = parseVector(ctx, types.New(types.T_uint16, 0, 0), []string{"-1"}, false)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))

	vec, err = parseConst(ctx, types.New(types.T_float64, 0, 0), " 2.5 ")
	require.NoError(t, err)
	require.True(t, vec.IsScalar())
	require.Equal(t, "[2.5]", vec.String())

	vec, err = parseConst(ctx, types.New(types.T_float64, 0, 0), "null")
	require.NoError(t, err)
	require.True(t, vec.IsScalarNull())
}

func TestGenReader(t *testing.T) {
	ctx := context.Background()
	r := newGenReader(types.New(types.T_uint8, 0, 0), 250, 100)

	var lengths []int
	for {
		bat, err := r.Read(ctx)
		require.NoError(t, err)
		if bat == nil {
			break
		}
		lengths = append(lengths, vector.Length(bat.Vecs[0]))
	}
	require.Equal(t, []int{100, 100, 50}, lengths)
}

func TestCSVReader(t *testing.T) {
	ctx := context.Background()
	data := "a,7\nb,-7\nc,NULL\n"
	r := newCSVReader(strings.NewReader(data), types.New(types.T_int64, 0, 0), 1, 2)

	bat, err := r.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "[7 -7]", bat.Vecs[0].String())
	bat, err = r.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "[NULL]", bat.Vecs[0].String())
	bat, err = r.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, bat)

	r = newCSVReader(strings.NewReader(data), types.New(types.T_int64, 0, 0), 3, 8)
	_, err = r.Read(ctx)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestProject(t *testing.T) {
	ctx := context.Background()
	typ := types.New(types.T_int32, 0, 0)

	cases := []struct {
		name    string
		fn      string
		divisor string
		want    string
	}{
		{name: "pmod", fn: "pmod", divisor: "3", want: "0,2\n1,0\n2,1\n3,2\n4,0\n"},
		{name: "mod", fn: "fmod", divisor: "3", want: "0,-1\n1,0\n2,-2\n3,-1\n4,0\n"},
		{name: "zero divisor", fn: "mod", divisor: "0", want: "0,NULL\n1,NULL\n2,NULL\n3,NULL\n4,NULL\n"},
		{name: "null divisor", fn: "pmod", divisor: "NULL", want: "0,NULL\n1,NULL\n2,NULL\n3,NULL\n4,NULL\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			div, err := parseConst(ctx, typ, c.divisor)
			require.NoError(t, err)
			proc := testutil.NewProcess()
			arg := &projection.Argument{
				FuncName:    c.fn,
				Args:        [2]projection.Operand{projection.ColumnOperand(0), projection.ConstOperand(div)},
				Parallelism: 2,
			}
			require.NoError(t, projection.Prepare(proc, arg, []types.Type{typ}))

			buf := new(bytes.Buffer)
			require.NoError(t, project(ctx, proc, arg, newGenReader(typ, 5, 2), buf))
			require.Equal(t, c.want, buf.String())
			require.Equal(t, int64(0), proc.Size())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, config.NewParameters(), cfg)

	cfg, err = loadConfig(context.Background(), "../../etc/mo-arith.toml")
	require.NoError(t, err)
	require.Equal(t, config.FastPathAuto, cfg.Kernel.FastPath)
	require.Equal(t, int64(4), cfg.Execution.Parallelism)
}

func TestListFunctions(t *testing.T) {
	var buf bytes.Buffer
	listFunctions(&buf)
	require.Equal(t, "fmod (alias of mod)\nmod\npmod\n", buf.String())
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	err := moerr.NewInvalidInput(context.Background(), "column %d", 3).WithDetail("input %s", "a.csv")
	reportError(&buf, err)
	require.Equal(t, "ERROR 1525 (HY000): invalid input: column 3: input a.csv\n", buf.String())

	buf.Reset()
	reportError(&buf, errors.New("open a.csv: no such file or directory"))
	require.Equal(t, "ERROR: open a.csv: no such file or directory\n", buf.String())
}

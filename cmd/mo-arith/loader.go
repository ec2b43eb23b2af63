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
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/matrixorigin/simdcsv"
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/batch"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
)

const dividendAttr = "dividend"

func parseType(ctx context.Context, name string, scale int32) (types.Type, error) {
	oid, ok := types.ParseT(strings.ToLower(name))
	if !ok || !oid.IsNumeric() {
		return types.Type{}, moerr.NewInvalidArg(ctx, "type", name)
	}
	switch oid {
	case types.T_decimal64:
		if scale < 0 || scale > types.MaxDecimal64Width {
			return types.Type{}, moerr.NewInvalidArg(ctx, "scale", scale)
		}
		return types.New(oid, types.MaxDecimal64Width, scale), nil
	case types.T_decimal128:
		if scale < 0 || scale > types.MaxDecimal128Width {
			return types.Type{}, moerr.NewInvalidArg(ctx, "scale", scale)
		}
		return types.New(oid, types.MaxDecimal128Width, scale), nil
	}
	return types.New(oid, 0, 0), nil
}

func isNullField(s string) bool {
	return s == "" || s == "\\N" || strings.EqualFold(s, "null")
}

// parseConst builds the constant divisor operand.
func parseConst(ctx context.Context, typ types.Type, s string) (*vector.Vector, error) {
	s = strings.TrimSpace(s)
	if isNullField(s) {
		return vector.NewConstNull(typ, 1), nil
	}
	return parseVector(ctx, typ, []string{s}, true)
}

// parseVector converts text fields to a vector of typ, null fields become
// null rows.
func parseVector(ctx context.Context, typ types.Type, fields []string, isConst bool) (*vector.Vector, error) {
	switch typ.Oid {
	case types.T_int8:
		return buildVector(ctx, typ, fields, isConst, parseSigned[int8](8))
	case types.T_int16:
		return buildVector(ctx, typ, fields, isConst, parseSigned[int16](16))
	case types.T_int32:
		return buildVector(ctx, typ, fields, isConst, parseSigned[int32](32))
	case types.T_int64:
		return buildVector(ctx, typ, fields, isConst, parseSigned[int64](64))
	case types.T_uint8:
		return buildVector(ctx, typ, fields, isConst, parseUnsigned[uint8](8))
	case types.T_uint16:
		return buildVector(ctx, typ, fields, isConst, parseUnsigned[uint16](16))
	case types.T_uint32:
		return buildVector(ctx, typ, fields, isConst, parseUnsigned[uint32](32))
	case types.T_uint64:
		return buildVector(ctx, typ, fields, isConst, parseUnsigned[uint64](64))
	case types.T_float32:
		return buildVector(ctx, typ, fields, isConst, parseFloat[float32](32))
	case types.T_float64:
		return buildVector(ctx, typ, fields, isConst, parseFloat[float64](64))
	case types.T_decimal64:
		return buildVector(ctx, typ, fields, isConst, func(s string) (types.Decimal64, error) {
			return types.ParseDecimal64(s, typ.Width, typ.Scale)
		})
	case types.T_decimal128:
		return buildVector(ctx, typ, fields, isConst, func(s string) (types.Decimal128, error) {
			return types.ParseDecimal128(s, typ.Width, typ.Scale)
		})
	}
	return nil, moerr.NewNotSupported(ctx, "column type %s", typ)
}

func buildVector[T any](ctx context.Context, typ types.Type, fields []string, isConst bool,
	parse func(string) (T, error)) (*vector.Vector, error) {
	vs := make([]T, len(fields))
	isNulls := make([]bool, len(fields))
	for i, s := range fields {
		if isNullField(s) {
			isNulls[i] = true
			continue
		}
		v, err := parse(s)
		if err != nil {
			if _, ok := err.(*moerr.Error); ok {
				return nil, err
			}
			return nil, moerr.NewInvalidInput(ctx, "invalid %s value '%s'", typ, s)
		}
		vs[i] = v
	}
	if isConst {
		return vector.NewConst(typ, vs[0], 1), nil
	}
	return vector.NewWithData(typ, vs, isNulls), nil
}

func parseSigned[T constraints.Signed](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		return T(v), err
	}
}

func parseUnsigned[T constraints.Unsigned](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		return T(v), err
	}
}

func parseFloat[T constraints.Float](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bits)
		return T(v), err
	}
}

// csvReader reads the dividend column of a csv stream batch by batch.
type csvReader struct {
	typ     types.Type
	col     int
	rows    int
	line    int
	reader  *simdcsv.Reader
	records [][]string
}

func newCSVReader(r io.Reader, typ types.Type, col, rows int) *csvReader {
	return &csvReader{
		typ:     typ,
		col:     col,
		rows:    rows,
		reader:  simdcsv.NewReaderWithOptions(r, ',', '#', true, true),
		records: make([][]string, rows),
	}
}

func (r *csvReader) Read(ctx context.Context) (*batch.Batch, error) {
	if r.reader == nil {
		return nil, nil
	}
	var (
		cnt int
		err error
	)
	r.records, cnt, err = r.reader.Read(r.rows, ctx, r.records)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	if err != nil || cnt < r.rows {
		r.reader = nil
	}
	if cnt == 0 {
		return nil, nil
	}
	fields := make([]string, cnt)
	for i, record := range r.records[:cnt] {
		if r.col < 0 || r.col >= len(record) {
			return nil, moerr.NewInvalidInput(ctx, "line %d has %d fields, column %d wanted", r.line+i+1, len(record), r.col)
		}
		fields[i] = strings.TrimSpace(record[r.col])
	}
	r.line += cnt
	vec, err := parseVector(ctx, r.typ, fields, false)
	if err != nil {
		return nil, err
	}
	return batch.NewWithVectors([]string{dividendAttr}, vec), nil
}

// genReader produces total rows cycling through [-100, 100), or [0, 200)
// for unsigned types, so that every type can hold them.
type genReader struct {
	typ   types.Type
	total int
	next  int
	rows  int
}

func newGenReader(typ types.Type, total, rows int) *genReader {
	return &genReader{
		typ:   typ,
		total: total,
		rows:  rows,
	}
}

func (r *genReader) Read(ctx context.Context) (*batch.Batch, error) {
	if r.next >= r.total {
		return nil, nil
	}
	n := r.total - r.next
	if n > r.rows {
		n = r.rows
	}
	fields := make([]string, n)
	for i := range fields {
		v := int64((r.next + i) % 200)
		if !r.typ.Oid.IsUnsignedInt() {
			v -= 100
		}
		fields[i] = strconv.FormatInt(v, 10)
	}
	r.next += n
	vec, err := parseVector(ctx, r.typ, fields, false)
	if err != nil {
		return nil, err
	}
	return batch.NewWithVectors([]string{dividendAttr}, vec), nil
}

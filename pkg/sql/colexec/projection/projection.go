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

package projection

import (
	"bytes"
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/batch"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/logutil"
	"github.com/matrixorigin/moarith/pkg/sql/plan/function"
	"github.com/matrixorigin/moarith/pkg/vm/process"
)

func String(arg any, buf *bytes.Buffer) {
	ap := arg.(*Argument)
	buf.WriteString("projection(")
	buf.WriteString(ap.FuncName)
	buf.WriteString("(")
	for i, op := range ap.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		if op.Const != nil {
			buf.WriteString(op.Const.GetString(0))
		} else {
			buf.WriteString(fmt.Sprintf("#%d", op.Pos))
		}
	}
	buf.WriteString("))")
}

// Prepare resolves the function against the operand types. colTypes are
// the types of the input batch columns.
func Prepare(proc *process.Process, arg any, colTypes []types.Type) error {
	ap := arg.(*Argument)
	ctx := proc.GetContext()
	typs := make([]types.Type, len(ap.Args))
	for i, op := range ap.Args {
		if op.Const != nil {
			if !op.Const.IsScalar() {
				return moerr.NewInvalidArg(ctx, "constant operand", op.Const.String())
			}
			typs[i] = op.Const.Typ
			continue
		}
		if op.Pos < 0 || int(op.Pos) >= len(colTypes) {
			return moerr.NewInvalidArg(ctx, "column position", op.Pos)
		}
		typs[i] = colTypes[op.Pos]
	}
	fn, typ, err := function.GetFunctionByName(ctx, ap.FuncName, typs)
	if err != nil {
		return err
	}
	if ap.Parallelism <= 0 {
		ap.Parallelism = int(proc.Lim.Parallelism)
	}
	if ap.Parallelism <= 0 {
		ap.Parallelism = 1
	}
	ap.fn, ap.typ, ap.prepared = fn, typ, true
	return nil
}

// Call evaluates the prepared function over one batch.
func Call(proc *process.Process, arg any, bat *batch.Batch) (*vector.Vector, error) {
	ap := arg.(*Argument)
	if !ap.prepared {
		return nil, moerr.NewInternalError(proc.GetContext(), "projection %s is not prepared", ap.FuncName)
	}
	n := batch.Length(bat)
	vs := make([]*vector.Vector, len(ap.Args))
	for i, op := range ap.Args {
		if op.Const != nil {
			// the constant is shared between workers, resize a private header
			vec := vector.NewLike(op.Const, op.Const.Typ, op.Const.Col)
			vec.SetLength(n)
			vs[i] = vec
			continue
		}
		if int(op.Pos) >= len(bat.Vecs) {
			return nil, moerr.NewInvalidArg(proc.GetContext(), "column position", op.Pos)
		}
		vs[i] = bat.GetVector(op.Pos)
	}
	return ap.fn.VecFn(vs, proc)
}

type result struct {
	vec *vector.Vector
	err error
}

// Run evaluates every batch of reader on a worker pool and hands the
// results to sink in read order. It stops at the first error, which is
// returned after all submitted work has finished.
func Run(ctx context.Context, proc *process.Process, arg any, reader Reader,
	sink func(idx int, vec *vector.Vector) error) error {
	ap := arg.(*Argument)
	if !ap.prepared {
		return moerr.NewInternalError(ctx, "projection %s is not prepared", ap.FuncName)
	}
	pool, err := ants.NewPool(ap.Parallelism, ants.WithPanicHandler(func(v interface{}) {
		panic(v)
	}))
	if err != nil {
		return moerr.ConvertGoError(ctx, err)
	}
	defer pool.Release()

	var (
		idx      int
		firstErr error
		pending  = make([]chan result, 0, ap.Parallelism)
	)
	// deliver waits for the oldest batch and passes it on.
	deliver := func() {
		ch := pending[0]
		pending = pending[1:]
		r := <-ch
		if firstErr != nil {
			return
		}
		if r.err != nil {
			firstErr = r.err
			return
		}
		if err := sink(idx, r.vec); err != nil {
			firstErr = err
			return
		}
		idx++
	}

	for firstErr == nil {
		if err := ctx.Err(); err != nil {
			firstErr = err
			break
		}
		bat, err := reader.Read(ctx)
		if err != nil {
			firstErr = err
			break
		}
		if bat == nil {
			break
		}
		ch := make(chan result, 1)
		if err := pool.Submit(func() {
			vec, err := Call(proc, ap, bat)
			ch <- result{vec: vec, err: err}
		}); err != nil {
			firstErr = moerr.ConvertGoError(ctx, err)
			break
		}
		pending = append(pending, ch)
		if len(pending) >= ap.Parallelism {
			deliver()
		}
	}
	for len(pending) > 0 {
		deliver()
	}

	if firstErr != nil {
		logutil.Error("projection failed",
			zap.String("proc", proc.Id),
			zap.String("func", ap.FuncName),
			zap.Int("batches", idx),
			zap.Error(firstErr))
		return firstErr
	}
	logutil.Debug("projection finished",
		zap.String("proc", proc.Id),
		zap.String("func", ap.FuncName),
		zap.Int("batches", idx),
		zap.Int("parallelism", ap.Parallelism))
	return nil
}

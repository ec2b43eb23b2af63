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

package process

import (
	"context"
	"sync/atomic"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
)

// New creates a new Process.
func New(ctx context.Context, id string, lim Limitation) *Process {
	return &Process{
		Id:  id,
		Ctx: ctx,
		Lim: lim,
	}
}

// Acquire accounts size bytes against the limitation, a non positive
// Lim.Size means unlimited.
func (proc *Process) Acquire(size int64) error {
	n := atomic.AddInt64(&proc.size, size)
	if proc.Lim.Size > 0 && n > proc.Lim.Size {
		atomic.AddInt64(&proc.size, -size)
		return moerr.NewOOM(proc.Ctx)
	}
	return nil
}

// Release returns size bytes taken by Acquire.
func (proc *Process) Release(size int64) {
	atomic.AddInt64(&proc.size, -size)
}

func (proc *Process) Size() int64 {
	return atomic.LoadInt64(&proc.size)
}

func (proc *Process) GetContext() context.Context {
	if proc.Ctx == nil {
		return context.Background()
	}
	return proc.Ctx
}

// AllocScalarNullVector returns a constant NULL of length 1, callers
// stretch it with SetLength.
func (proc *Process) AllocScalarNullVector(typ types.Type) *vector.Vector {
	return vector.NewConstNull(typ, 1)
}

// AllocVector returns a flat vector of rows zero values, accounted
// against the limitation.
func AllocVector[T any](proc *Process, typ types.Type, rows int) (*vector.Vector, error) {
	if err := proc.Acquire(int64(rows) * int64(typ.TypeSize())); err != nil {
		return nil, err
	}
	return vector.PreAlloc[T](typ, rows), nil
}

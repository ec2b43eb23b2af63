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
	"context"

	"github.com/matrixorigin/moarith/pkg/container/batch"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/sql/plan/function"
)

//go:generate mockgen -source=types.go -destination=mock_reader.go -package=projection

// Reader produces the input batches of a projection.
type Reader interface {
	// Read returns the next batch, or nil once the input is exhausted.
	Read(ctx context.Context) (*batch.Batch, error)
}

// Operand is either a column of the input batch or a constant.
type Operand struct {
	// Pos is the column position, used when Const is nil.
	Pos int32
	// Const is a scalar vector shared by every batch.
	Const *vector.Vector
}

func ColumnOperand(pos int32) Operand {
	return Operand{Pos: pos}
}

func ConstOperand(vec *vector.Vector) Operand {
	return Operand{Const: vec}
}

type Argument struct {
	FuncName string
	Args     [2]Operand
	// Parallelism is the number of batches evaluated at the same time,
	// Prepare takes it from the process limitation when unset.
	Parallelism int

	prepared bool
	fn       function.Function
	typ      types.Type
}

// ResultType is valid after Prepare.
func (arg *Argument) ResultType() types.Type {
	return arg.typ
}

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

package mod

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/moarith/pkg/container/types"
)

type Op uint8

const (
	Modulo Op = iota
	PositiveModulo
)

func (op Op) String() string {
	switch op {
	case Modulo:
		return "mod"
	case PositiveModulo:
		return "pmod"
	}
	return fmt.Sprintf("unknown mod op %d", op)
}

// Aliases maps alternative names to the name of the kernel they run.
var Aliases = map[string]string{
	"fmod": "mod",
}

// Names lists the kernel names, aliases excluded.
var Names = []string{Modulo.String(), PositiveModulo.String()}

// ScalarFunc returns a remainder and whether the row is null.
type ScalarFunc[T any] func(a, b T) (T, bool)

// BulkFunc applies one divisor to len(rs) dividends.
type BulkFunc[T any] func(xs []T, y T, rs []T, nsp []bool)

// Kernel binds the two entry points of one operation over one domain.
type Kernel[T any] struct {
	Op     Op
	Scalar ScalarFunc[T]
	Bulk   BulkFunc[T]
}

func (k Kernel[T]) Name() string {
	return k.Op.String()
}

func Integer[T constraints.Integer](op Op) Kernel[T] {
	if op == PositiveModulo {
		return Kernel[T]{Op: op, Scalar: IntPMod[T], Bulk: IntPModScalar[T]}
	}
	return Kernel[T]{Op: op, Scalar: IntMod[T], Bulk: IntModScalar[T]}
}

func Float(op Op) Kernel[float64] {
	if op == PositiveModulo {
		return Kernel[float64]{Op: op, Scalar: FloatPMod, Bulk: FloatPModScalar}
	}
	return Kernel[float64]{Op: op, Scalar: FloatMod, Bulk: FloatModScalar}
}

func Decimal64(op Op) Kernel[types.Decimal64] {
	if op == PositiveModulo {
		return Kernel[types.Decimal64]{Op: op, Scalar: Decimal64PMod, Bulk: Decimal64PModScalar}
	}
	return Kernel[types.Decimal64]{Op: op, Scalar: Decimal64Mod, Bulk: Decimal64ModScalar}
}

func Decimal128(op Op) Kernel[types.Decimal128] {
	if op == PositiveModulo {
		return Kernel[types.Decimal128]{Op: op, Scalar: Decimal128PMod, Bulk: Decimal128PModScalar}
	}
	return Kernel[types.Decimal128]{Op: op, Scalar: Decimal128Mod, Bulk: Decimal128ModScalar}
}

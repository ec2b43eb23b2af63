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

	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/sql/plan/function/operator"
	"github.com/matrixorigin/moarith/pkg/vectorize/mod"
)

func init() {
	initOperators()
}

// modOperators binds the remainder kernels to their evaluators.
var modOperators = map[string]Function{
	mod.Modulo.String(): {
		Index:        0,
		Flag:         BinaryOperator | ProduceNull,
		TypeCheckFn:  modOperatorSupports,
		ReturnTypeFn: modReturnType,
		Fn:           operator.Mod,
		Info:         "truncating remainder, the sign follows the dividend",
	},
	mod.PositiveModulo.String(): {
		Index:        0,
		Flag:         BinaryOperator | ProduceNull,
		TypeCheckFn:  modOperatorSupports,
		ReturnTypeFn: modReturnType,
		Fn:           operator.PMod,
		Info:         "remainder in [0, |divisor|)",
	},
}

func initOperators() {
	ctx := context.Background()
	for _, name := range mod.Names {
		if err := appendFunction(ctx, name, modOperators[name]); err != nil {
			panic(err)
		}
	}
	for alias, name := range mod.Aliases {
		if err := registerAlias(ctx, alias, name); err != nil {
			panic(err)
		}
	}
}

func modOperatorSupports(typs []types.Type) bool {
	if len(typs) != 2 {
		return false
	}
	return typs[0].Oid.IsNumeric() && typs[1].Oid.IsNumeric()
}

func modReturnType(typs []types.Type) (types.Type, error) {
	return types.ModResultType(typs[0], typs[1])
}

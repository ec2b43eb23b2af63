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
	"reflect"
	"sort"
	"sync"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/vm/process"
)

type Flag uint32

const (
	// BinaryOperator means the function takes exactly two operands.
	BinaryOperator Flag = 1 << iota
	// ProduceNull means the function may return NULL for non NULL operands.
	ProduceNull
)

var (
	// an empty function structure just for return when we couldn't meet any function.
	emptyFunction = Function{}
)

// Function is an overload of a built-in function or an operator
type Function struct {
	// Index is the function's location number of all the overloads with the same functionName.
	Index int32

	Flag Flag

	// Args is nil when TypeCheckFn decides alone.
	Args []types.T

	// TypeCheckFn returns true if inputTypes meet the type requirement.
	TypeCheckFn func(inputTypes []types.Type) bool

	// ReturnTypeFn derives the result type from the operand types.
	ReturnTypeFn func(inputTypes []types.Type) (types.Type, error)

	// Fn is implementation of built-in function and operator
	// it received vector list, and return result vector.
	Fn func(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error)

	// Info records information about the function overload used to print
	Info string
}

func (f Function) IsBinaryOperator() bool {
	return f.Flag&BinaryOperator != 0
}

func (f Function) ProducesNull() bool {
	return f.Flag&ProduceNull != 0
}

func (f Function) VecFn(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	if f.Fn == nil {
		return nil, moerr.NewInvalidFuncDefn(proc.GetContext(), "function doesn't implement its eval method")
	}
	return f.Fn(vs, proc)
}

// functionRegister records the information about all the operators and
// built-in functions, aliasRegister maps an alias to its function name.
var (
	functionRegister = map[string][]Function{}
	aliasRegister    = map[string]string{}
	registerMutex    sync.RWMutex
)

// GetFunctionByName resolves name, aliases included, against the operand
// types and returns the matching overload with its result type.
func GetFunctionByName(ctx context.Context, name string, args []types.Type) (Function, types.Type, error) {
	registerMutex.RLock()
	defer registerMutex.RUnlock()

	if target, ok := aliasRegister[name]; ok {
		name = target
	}
	fs, ok := functionRegister[name]
	if !ok {
		return emptyFunction, types.Type{}, moerr.NewFunctionNotExists(ctx, name)
	}
	for _, f := range fs {
		if !f.TypeCheckFn(args) {
			continue
		}
		if f.ReturnTypeFn == nil {
			return f, args[0], nil
		}
		typ, err := f.ReturnTypeFn(args)
		if err != nil {
			return emptyFunction, types.Type{}, err
		}
		return f, typ, nil
	}
	return emptyFunction, types.Type{}, moerr.NewNotSupported(ctx, "%s%v", name, typeNames(args))
}

// IsAlias returns the function an alias stands for.
func IsAlias(name string) (string, bool) {
	registerMutex.RLock()
	defer registerMutex.RUnlock()
	target, ok := aliasRegister[name]
	return target, ok
}

// FunctionNames lists registered names and aliases in order.
func FunctionNames() []string {
	registerMutex.RLock()
	defer registerMutex.RUnlock()
	names := make([]string, 0, len(functionRegister)+len(aliasRegister))
	for name := range functionRegister {
		names = append(names, name)
	}
	for name := range aliasRegister {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// appendFunction is a method only used at init-functions to add a new function into supported-function list.
// Ensure that no duplicate functions will be added.
func appendFunction(ctx context.Context, name string, newFunction Function) error {
	if err := completenessCheck(ctx, newFunction, name); err != nil {
		return err
	}

	registerMutex.Lock()
	defer registerMutex.Unlock()

	if _, ok := aliasRegister[name]; ok {
		return moerr.NewDuplicateFunc(ctx, name)
	}
	fs := functionRegister[name]
	if newFunction.Index != int32(len(fs)) {
		return moerr.NewInvalidFuncDefn(ctx, "function %s(%v)'s index number is wrong", name, newFunction.Args)
	}
	for _, f := range fs {
		if functionsEqual(f, newFunction) {
			return moerr.NewDuplicateFunc(ctx, name)
		}
	}
	functionRegister[name] = append(fs, newFunction)
	return nil
}

// registerAlias makes alias resolve to the registered function name.
func registerAlias(ctx context.Context, alias, name string) error {
	registerMutex.Lock()
	defer registerMutex.Unlock()

	if _, ok := functionRegister[name]; !ok {
		return moerr.NewInvalidFuncDefn(ctx, "alias %s of unknown function %s", alias, name)
	}
	if _, ok := functionRegister[alias]; ok {
		return moerr.NewDuplicateFunc(ctx, alias)
	}
	if _, ok := aliasRegister[alias]; ok {
		return moerr.NewDuplicateFunc(ctx, alias)
	}
	aliasRegister[alias] = name
	return nil
}

func completenessCheck(ctx context.Context, f Function, name string) error {
	if f.Fn == nil {
		return moerr.NewInvalidFuncDefn(ctx, "function '%s' missing its's Fn", name)
	}
	if f.TypeCheckFn == nil {
		return moerr.NewInvalidFuncDefn(ctx, "function '%s' missing its's type check function", name)
	}
	return nil
}

func functionsEqual(f1 Function, f2 Function) bool {
	if reflect.DeepEqual(f1.Args, f2.Args) {
		if f1.Args == nil {
			if reflect.ValueOf(f1.TypeCheckFn).Pointer() != reflect.ValueOf(f2.TypeCheckFn).Pointer() {
				return false
			}
		}
		return true
	}
	return false
}

func typeNames(args []types.Type) []string {
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = arg.String()
	}
	return names
}

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
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/config"
	"github.com/matrixorigin/moarith/pkg/container/types"
	"github.com/matrixorigin/moarith/pkg/container/vector"
	"github.com/matrixorigin/moarith/pkg/logutil"
	"github.com/matrixorigin/moarith/pkg/sql/colexec/projection"
	"github.com/matrixorigin/moarith/pkg/sql/plan/function"
	"github.com/matrixorigin/moarith/pkg/vm/process"
)

var (
	configFile = flag.String("cfg", "", "toml configuration, defaults are used when empty")
	funcName   = flag.String("func", "mod", "function to run, see -list")
	list       = flag.Bool("list", false, "print the available functions and exit")
	typeName   = flag.String("type", "int64", "type of the dividend column and the divisor")
	scale      = flag.Int("scale", 2, "scale of decimal types")
	divisor    = flag.String("divisor", "", "constant divisor, NULL for a null divisor")
	inputFile  = flag.String("input", "", "csv file holding the dividend column")
	column     = flag.Int("col", 0, "column of the csv file")
	rows       = flag.Int("rows", 0, "rows to generate when no input file is given")
)

func main() {
	flag.Parse()
	if *list {
		listFunctions(os.Stdout)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := loadConfig(ctx, *configFile)
	if err != nil {
		panic(fmt.Sprintf("failed to parse config from %s, error: %s", *configFile, err.Error()))
	}
	logutil.SetupMOLogger(&cfg.Log)
	defer logutil.Sync()
	cfg.Apply()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		logutil.Error("mo-arith failed", zap.Error(err))
		logutil.Sync()
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// listFunctions prints one function per line, aliases name their target.
func listFunctions(w io.Writer) {
	for _, name := range function.FunctionNames() {
		if target, ok := function.IsAlias(name); ok {
			fmt.Fprintf(w, "%s (alias of %s)\n", name, target)
			continue
		}
		fmt.Fprintln(w, name)
	}
}

// reportError prints err the way a mysql client shows a server error.
func reportError(w io.Writer, err error) {
	if me, ok := err.(*moerr.Error); ok {
		fmt.Fprintf(w, "ERROR %d (%s): %s\n", me.MySQLCode(), me.SqlState(), me.Display())
		return
	}
	fmt.Fprintf(w, "ERROR: %s\n", err)
}

func loadConfig(ctx context.Context, file string) (*config.Parameters, error) {
	if file == "" {
		return config.NewParameters(), nil
	}
	return config.LoadFromFile(ctx, file)
}

func run(ctx context.Context, cfg *config.Parameters, out io.Writer) error {
	typ, err := parseType(ctx, *typeName, int32(*scale))
	if err != nil {
		return err
	}
	div, err := parseConst(ctx, typ, *divisor)
	if err != nil {
		return err
	}

	proc := process.New(ctx, "mo-arith", process.Limitation{
		Size:        cfg.Execution.MemoryLimit,
		BatchRows:   cfg.Execution.BatchRows,
		Parallelism: cfg.Execution.Parallelism,
	})
	arg := &projection.Argument{
		FuncName: *funcName,
		Args:     [2]projection.Operand{projection.ColumnOperand(0), projection.ConstOperand(div)},
	}
	if err := projection.Prepare(proc, arg, []types.Type{typ}); err != nil {
		return err
	}

	var reader projection.Reader
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		reader = newCSVReader(f, typ, *column, int(proc.Lim.BatchRows))
	} else {
		reader = newGenReader(typ, *rows, int(proc.Lim.BatchRows))
	}
	err = project(ctx, proc, arg, reader, out)
	if me, ok := err.(*moerr.Error); ok && *inputFile != "" {
		return me.WithDetail("input %s", *inputFile)
	}
	return err
}

// project runs arg over reader and prints one "row,value" line per row.
func project(ctx context.Context, proc *process.Process, arg *projection.Argument,
	reader projection.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	var (
		total int
		nulls int
	)
	err := projection.Run(ctx, proc, arg, reader, func(_ int, vec *vector.Vector) error {
		n := vector.Length(vec)
		for i := 0; i < n; i++ {
			if _, err := fmt.Fprintf(w, "%d,%s\n", total+i, vec.GetString(i)); err != nil {
				return err
			}
		}
		total += n
		if vec.IsScalar() {
			if vec.IsScalarNull() {
				nulls += n
			}
			return nil
		}
		nulls += vec.Nsp.Count()
		proc.Release(int64(n) * int64(vec.Typ.TypeSize()))
		return nil
	})
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	logutil.Info("projection done",
		zap.String("func", arg.FuncName),
		zap.String("type", arg.ResultType().String()),
		zap.Int("rows", total),
		zap.Int("nulls", nulls))
	return nil
}

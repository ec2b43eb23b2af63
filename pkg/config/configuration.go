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

package config

import (
	"context"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/moarith/pkg/common/moerr"
	"github.com/matrixorigin/moarith/pkg/logutil"
	"github.com/matrixorigin/moarith/pkg/vectorize/mod"
)

const (
	FastPathAuto = "auto"
	FastPathOn   = "on"
	FastPathOff  = "off"

	defaultBatchRows   = 8192
	defaultParallelism = 4
	// 1 << 30 = 1073741824
	defaultMemoryLimit = 1 << 30
)

// Parameters of mo-arith
type Parameters struct {
	Log logutil.LogConfig `toml:"log"`

	Kernel KernelParameters `toml:"kernel"`

	Execution ExecutionParameters `toml:"execution"`
}

type KernelParameters struct {
	//fast path for integer mod with a constant divisor. auto, on or off. default: auto
	FastPath string `toml:"fast-path"`
}

type ExecutionParameters struct {
	//rows of one batch. default: 8192
	BatchRows int64 `toml:"batch-rows"`

	//batches evaluated at the same time. default: 4
	Parallelism int64 `toml:"parallelism"`

	//bytes a process may hold for results. default: 1 << 30 = 1073741824
	MemoryLimit int64 `toml:"memory-limit"`
}

// SetDefaultValues fills every unset field.
func (p *Parameters) SetDefaultValues() {
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "console"
	}
	if p.Log.MaxSize == 0 {
		p.Log.MaxSize = 512
	}
	if p.Kernel.FastPath == "" {
		p.Kernel.FastPath = FastPathAuto
	}
	if p.Execution.BatchRows == 0 {
		p.Execution.BatchRows = defaultBatchRows
	}
	if p.Execution.Parallelism == 0 {
		p.Execution.Parallelism = defaultParallelism
	}
	if p.Execution.MemoryLimit == 0 {
		p.Execution.MemoryLimit = defaultMemoryLimit
	}
}

func (p *Parameters) Validate(ctx context.Context) error {
	switch strings.ToLower(p.Kernel.FastPath) {
	case FastPathAuto, FastPathOn, FastPathOff:
	default:
		return moerr.NewBadConfig(ctx, "kernel.fast-path must be auto, on or off, got '%s'", p.Kernel.FastPath)
	}
	switch p.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfig(ctx, "log.format '%s'", p.Log.Format)
	}
	if p.Execution.BatchRows < 0 {
		return moerr.NewBadConfig(ctx, "execution.batch-rows %d", p.Execution.BatchRows)
	}
	if p.Execution.Parallelism < 0 {
		return moerr.NewBadConfig(ctx, "execution.parallelism %d", p.Execution.Parallelism)
	}
	if p.Execution.MemoryLimit < 0 {
		return moerr.NewBadConfig(ctx, "execution.memory-limit %d", p.Execution.MemoryLimit)
	}
	return nil
}

// UseFastPath resolves the kernel switch against the running cpu.
func (p *Parameters) UseFastPath() bool {
	switch strings.ToLower(p.Kernel.FastPath) {
	case FastPathOn:
		return true
	case FastPathOff:
		return false
	default:
		return mod.FastPathSupported()
	}
}

// Apply pushes the process wide switches into the packages that own them.
func (p *Parameters) Apply() {
	if strings.ToLower(p.Kernel.FastPath) == FastPathOn && !mod.FastPathSupported() {
		logutil.Warn("integer mod fast path forced on a cpu it was not tuned for")
	}
	mod.SetFastPath(p.UseFastPath())
}

// LoadFromFile decodes a toml file, fills defaults and validates the result.
func LoadFromFile(ctx context.Context, file string) (*Parameters, error) {
	p := &Parameters{}
	if _, err := toml.DecodeFile(file, p); err != nil {
		return nil, moerr.NewBadConfig(ctx, "decode %s: %v", file, err)
	}
	p.SetDefaultValues()
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// NewParameters returns the defaults, used when no file is given.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.SetDefaultValues()
	return p
}

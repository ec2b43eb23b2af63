// Copyright 2021 - 2022 Matrix Origin
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

package moerr

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	ctx := context.TODO()
	tests := []struct {
		name    string
		err     *Error
		code    uint16
		message string
	}{
		{"internal", NewInternalError(ctx, "bad %s", "thing"), ErrInternal, "internal error: bad thing"},
		{"not supported", NewNotSupported(ctx, "mod(%s, %s)", "varchar", "int32"), ErrNotSupported, "not supported: mod(varchar, int32)"},
		{"oom", NewOOM(ctx), ErrOOM, "error: out of memory"},
		{"out of range", NewOutOfRange(ctx, "decimal64", "value %d", 7), ErrOutOfRange, "data out of range: data type decimal64, value 7"},
		{"invalid arg", NewInvalidArg(ctx, "fast-path", "maybe"), ErrInvalidArg, "invalid argument fast-path, bad value maybe"},
		{"no function", NewFunctionNotExists(ctx, "rem"), ErrFunctionNotExists, "function rem does not exist"},
		{"bad config", NewBadConfig(ctx, "parallelism %d", -1), ErrBadConfig, "invalid configuration: parallelism -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, tt.err.ErrorCode())
			require.Equal(t, tt.message, tt.err.Error())
			require.True(t, IsMoErrCode(tt.err, tt.code))
		})
	}
}

func TestIsMoErrCode(t *testing.T) {
	require.True(t, IsMoErrCode(nil, Ok))
	require.False(t, IsMoErrCode(errors.New("plain"), ErrInternal))
	require.False(t, IsMoErrCode(NewOOM(context.TODO()), ErrInternal))
}

func TestConvertGoError(t *testing.T) {
	ctx := context.TODO()
	require.Nil(t, ConvertGoError(ctx, nil))

	me := NewInvalidInput(ctx, "x")
	require.Equal(t, me, ConvertGoError(ctx, me))

	require.True(t, IsMoErrCode(ConvertGoError(ctx, io.EOF), ErrUnexpectedEOF))
	require.True(t, IsMoErrCode(ConvertGoError(ctx, errors.New("boom")), ErrInternal))
}

func TestDisplay(t *testing.T) {
	e := NewInvalidInput(context.TODO(), "column %d", 3)
	require.Equal(t, "invalid input: column 3", e.Display())
	e.WithDetail("file %s", "a.csv")
	require.Equal(t, "invalid input: column 3: file a.csv", e.Display())
	require.Equal(t, MySQLDefaultSqlState, e.SqlState())
	require.Equal(t, ER_WRONG_VALUE, e.MySQLCode())
}

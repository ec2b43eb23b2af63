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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rows(nsp *Nulls) []uint64 {
	if nsp.Np == nil {
		return []uint64{}
	}
	return nsp.Np.ToArray()
}

func TestOr(t *testing.T) {
	a, b := &Nulls{}, &Nulls{}
	Add(a, 1, 3)
	Add(b, 3, 7)
	r := &Nulls{}
	Or(a, b, r)
	require.Equal(t, []uint64{1, 3, 7}, rows(r))

	Or(&Nulls{}, nil, r)
	require.Nil(t, r.Np)
	require.False(t, Any(r))
}

func TestAddRangeAndLength(t *testing.T) {
	nsp := &Nulls{}
	AddRange(nsp, 2, 5)
	require.Equal(t, 3, Length(nsp))
	require.True(t, Contains(nsp, 2))
	require.True(t, Contains(nsp, 4))
	require.False(t, Contains(nsp, 5))

	AddRange(nsp, 9, 9)
	require.Equal(t, 3, nsp.Count())
	require.Equal(t, []uint64{2, 3, 4}, rows(nsp))
	require.False(t, Contains(nil, 2))
}

func TestAddMask(t *testing.T) {
	tests := []struct {
		name string
		mask []bool
		want []uint64
	}{
		{"empty", nil, []uint64{}},
		{"all null", []bool{true, true, true, true}, []uint64{0, 1, 2, 3}},
		{"no null", []bool{false, false, false}, []uint64{}},
		{"mixed", []bool{false, true, false, true}, []uint64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nsp := &Nulls{}
			AddMask(nsp, tt.mask)
			require.Equal(t, tt.want, rows(nsp))
		})
	}
}

func TestSet(t *testing.T) {
	nsp := &Nulls{}
	Add(nsp, 0, 4, 6)
	m := &Nulls{}
	Set(m, nsp)
	require.Equal(t, 3, m.Count())

	Set(m, nil)
	Set(m, &Nulls{})
	require.Equal(t, []uint64{0, 4, 6}, rows(m))
}

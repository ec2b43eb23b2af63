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

// Package nulls wrap up functions for the manipulation of bitmap library roaring.
// A column keeps the positions of its NULL values in a Nulls.
package nulls

import (
	"github.com/RoaringBitmap/roaring/roaring64"
)

type Nulls struct {
	Np *roaring64.Bitmap
}

// Or performs union operation on Nulls nsp,m and store the result in r
func Or(nsp, m, r *Nulls) {
	if !Any(nsp) && !Any(m) {
		r.Np = nil
		return
	}

	r.Np = roaring64.NewBitmap()
	if Any(nsp) {
		r.Np.Or(nsp.Np)
	}
	if Any(m) {
		r.Np.Or(m.Np)
	}
}

// Any returns true if any bit in the Nulls is set, otherwise it will return false.
func Any(nsp *Nulls) bool {
	if nsp == nil || nsp.Np == nil {
		return false
	}
	return !nsp.Np.IsEmpty()
}

// Length returns the number of integers contained in the Nulls
func Length(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

// Contains returns true if the integer is contained in the Nulls
func Contains(nsp *Nulls, row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

func Add(nsp *Nulls, rows ...uint64) {
	if len(rows) == 0 {
		return
	}
	if nsp.Np == nil {
		nsp.Np = roaring64.NewBitmap()
	}
	nsp.Np.AddMany(rows)
}

// AddRange marks [start, end) as null.
func AddRange(nsp *Nulls, start, end uint64) {
	if start >= end {
		return
	}
	if nsp.Np == nil {
		nsp.Np = roaring64.NewBitmap()
	}
	nsp.Np.AddRange(start, end)
}

// Set performs union operation on Nulls nsp,m and store the result in nsp
func Set(nsp, m *Nulls) {
	if m != nil && m.Np != nil {
		if nsp.Np == nil {
			nsp.Np = roaring64.NewBitmap()
		}
		nsp.Np.Or(m.Np)
	}
}

// AddMask folds a kernel null mask into nsp, row i of the mask is row i of
// the column. A mask produced by a bulk kernel holds one verdict for every
// row, that case becomes a single range insert.
func AddMask(nsp *Nulls, mask []bool) {
	n := len(mask)
	if n == 0 {
		return
	}
	if uniform(mask) {
		if mask[0] {
			AddRange(nsp, 0, uint64(n))
		}
		return
	}
	for i, isNull := range mask {
		if isNull {
			Add(nsp, uint64(i))
		}
	}
}

func uniform(mask []bool) bool {
	first := mask[0]
	for _, v := range mask[1:] {
		if v != first {
			return false
		}
	}
	return true
}

func (nsp *Nulls) Count() int {
	return Length(nsp)
}

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
	"math/bits"
	"sync/atomic"
	"unsafe"

	"golang.org/x/exp/constraints"
	"golang.org/x/sys/cpu"
)

// Divisor classification for IntModScalar. Every branch below produces
// exactly x % d, the switch only picks a cheaper instruction sequence for
// the whole batch:
//
//	|d| == 1         all zeros
//	|d| == 2^k       mask, with a sign bias for signed dividends
//	width <= 32 bits reciprocal multiplication (Lemire's fastmod)
//	otherwise        the plain loop

var fastPath int32

// FastPathSupported reports whether the running cpu is one the fast path
// was tuned on. It is a variable so tests can pretend otherwise.
var FastPathSupported = func() bool {
	return cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}

func init() {
	SetFastPath(FastPathSupported())
}

// SetFastPath turns the divisor classification of IntModScalar on or off.
func SetFastPath(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&fastPath, v)
}

func FastPathEnabled() bool {
	return atomic.LoadInt32(&fastPath) == 1
}

// intModFast fills rs and returns true when d has a fast class, len(xs) ==
// len(rs) and d != 0.
func intModFast[T constraints.Integer](xs []T, d T, rs []T) bool {
	w := uint(unsafe.Sizeof(d)) * 8
	signed := ^T(0) < 0
	ad := d
	if signed && d < 0 {
		ad = -d
		// MinInt has no magnitude in T
		if ad < 0 {
			return false
		}
	}
	switch {
	case ad == 1:
		for i := range rs {
			rs[i] = 0
		}
	case ad&(ad-1) == 0:
		mask := ad - 1
		if !signed {
			for i, x := range xs {
				rs[i] = x & mask
			}
			break
		}
		for i, x := range xs {
			bias := (x >> (w - 1)) & mask
			rs[i] = ((x + bias) & mask) - bias
		}
	case w <= 32:
		fastmod(xs, uint64(ad), rs, signed, w)
	default:
		return false
	}
	return true
}

// fastmod computes x mod d through one 64x64 multiplication, see
// "Faster Remainder by Direct Computation", Lemire, Kaser, Kurz 2019.
// Signed dividends go through their magnitude and get the sign back.
func fastmod[T constraints.Integer](xs []T, d uint64, rs []T, signed bool, w uint) {
	m := ^uint64(0)/d + 1
	if !signed {
		for i, x := range xs {
			hi, _ := bits.Mul64(m*uint64(x), d)
			rs[i] = T(hi)
		}
		return
	}
	lowMask := uint64(1)<<w - 1
	for i, x := range xs {
		s := x >> (w - 1)
		ua := uint64((x^s)-s) & lowMask
		hi, _ := bits.Mul64(m*ua, d)
		rs[i] = (T(hi) ^ s) - s
	}
}

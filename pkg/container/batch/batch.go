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

package batch

import (
	"fmt"

	"github.com/matrixorigin/moarith/pkg/container/vector"
)

// Batch represents a part of a relation, every vector has the same length.
type Batch struct {
	// Attrs column name list
	Attrs []string
	// Vecs col data
	Vecs []*vector.Vector
}

func New(attrs []string) *Batch {
	return &Batch{
		Attrs: attrs,
		Vecs:  make([]*vector.Vector, len(attrs)),
	}
}

func NewWithVectors(attrs []string, vecs ...*vector.Vector) *Batch {
	return &Batch{
		Attrs: attrs,
		Vecs:  vecs,
	}
}

// Length returns the row count, taken from the first flat vector.
func Length(bat *Batch) int {
	for _, vec := range bat.Vecs {
		if vec != nil && !vec.IsScalar() {
			return vector.Length(vec)
		}
	}
	if len(bat.Vecs) > 0 && bat.Vecs[0] != nil {
		return vector.Length(bat.Vecs[0])
	}
	return 0
}

func (bat *Batch) GetVector(pos int32) *vector.Vector {
	return bat.Vecs[pos]
}

func (bat *Batch) String() string {
	var buf []byte

	for i, vec := range bat.Vecs {
		name := fmt.Sprintf("%d", i)
		if i < len(bat.Attrs) {
			name = bat.Attrs[i]
		}
		buf = append(buf, fmt.Sprintf("%s(%s): %s\n", name, vec.Typ, vec)...)
	}
	return string(buf)
}

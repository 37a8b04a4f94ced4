// Copyright 2026 The qtc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qtc

// Node is one entry of a Quadtree: a block's mean grayscale value,
// the integer remainder needed to recover the exact sum of its four
// children's means, a uniformity flag, and its transient variance.
type Node struct {
	Mean     uint8   // mean grayscale value of the block, in [0,255]
	Epsilon  uint8   // (sum of children means) mod 4, in [0,3]
	Uniform  bool    // true iff the whole block is a single grayscale value, or Filter collapsed it to Mean
	Variance float64 // transient: set by Build, consumed by Filter, never serialized
}

// Quadtree is a complete 4-ary tree stored in heap layout: the
// children of node i live at indices 4i+1..4i+4, clockwise
// (top-left, top-right, bottom-right, bottom-left). The root is
// index 0.
type Quadtree struct {
	Nodes        []Node
	Levels       int
	TotalNodes   int
	MeanVariance float64
	MaxVariance  float64
}

// NewQuadtree allocates an empty tree of the given depth. Total node
// count follows T = (4^(levels+1) - 1) / 3.
func NewQuadtree(levels int) *Quadtree {
	total := 0
	for i := 0; i <= levels; i++ {
		total += 1 << (2 * i) // 4^i
	}
	return &Quadtree{
		Nodes:      make([]Node, total),
		Levels:     levels,
		TotalNodes: total,
	}
}

// IsLeaf reports whether index i addresses a leaf node.
func (q *Quadtree) IsLeaf(i int) bool {
	return i >= q.TotalNodes-(1<<(2*q.Levels))
}

// Parent returns the index of i's parent. The result is meaningless
// for the root (index 0); callers must special-case it.
func (q *Quadtree) Parent(i int) int {
	return (i - 1) / 4
}

// Child returns the index of the k-th child (k in 1..4) of node i.
func (q *Quadtree) Child(i, k int) int {
	return 4*i + k
}

// Width returns the raster side this tree decodes to or was built
// from: 2^Levels.
func (q *Quadtree) Width() int {
	return 1 << q.Levels
}

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

import (
	"fmt"
	"math"
	"math/bits"
)

// Build constructs a complete quadtree from a square raster whose
// side is a positive power of two. maxVal bounds the valid pixel
// range [0, maxVal].
func Build(r *Raster, maxVal int) (*Quadtree, error) {
	levels, err := levelsForWidth(r.Width)
	if err != nil {
		return nil, err
	}
	for i, p := range r.Pix {
		if int(p) > maxVal {
			return nil, fmt.Errorf("qtc: build: pixel %d value %d exceeds max %d: %w", i, p, maxVal, ErrInvalidPixel)
		}
	}

	q := NewQuadtree(levels)
	buildRec(q, r, r.Width, 0, 0, 0)

	nonLeaf := q.TotalNodes - (1 << (2 * q.Levels))
	if nonLeaf > 0 {
		q.MeanVariance /= float64(nonLeaf)
	}
	return q, nil
}

// levelsForWidth validates that width is a positive power of two and
// returns log2(width).
func levelsForWidth(width int) (int, error) {
	if width <= 0 || width&(width-1) != 0 {
		return 0, ErrInvalidDimensions
	}
	return bits.TrailingZeros(uint(width)), nil
}

// buildRec recurses postorder over the size x size block at (x, y)
// rooted at node index, filling in mean, epsilon, uniform and
// variance bottom-up.
func buildRec(q *Quadtree, r *Raster, size, index, x, y int) {
	node := &q.Nodes[index]

	if size == 1 {
		node.Mean = r.At(x, y)
		node.Epsilon = 0
		node.Uniform = true
		node.Variance = 0
		return
	}

	childSize := size / 2
	buildRec(q, r, childSize, q.Child(index, 1), x, y)                       // top-left
	buildRec(q, r, childSize, q.Child(index, 2), x+childSize, y)             // top-right
	buildRec(q, r, childSize, q.Child(index, 3), x+childSize, y+childSize)   // bottom-right
	buildRec(q, r, childSize, q.Child(index, 4), x, y+childSize)             // bottom-left

	var sum int
	var childMeans [4]uint8
	var childUniform [4]bool
	var childVariance [4]float64
	for k := 0; k < 4; k++ {
		c := &q.Nodes[q.Child(index, k+1)]
		childMeans[k] = c.Mean
		childUniform[k] = c.Uniform
		childVariance[k] = c.Variance
		sum += int(c.Mean)
	}

	node.Mean = uint8(sum / 4)
	node.Epsilon = uint8(sum % 4)

	var sumSq float64
	for k := 0; k < 4; k++ {
		diff := float64(node.Mean) - float64(childMeans[k])
		sumSq += childVariance[k]*childVariance[k] + diff*diff
	}
	node.Variance = math.Sqrt(sumSq) / 4

	q.MeanVariance += node.Variance
	if node.Variance > q.MaxVariance {
		q.MaxVariance = node.Variance
	}

	node.Uniform = childUniform[0] && childUniform[1] && childUniform[2] && childUniform[3] &&
		childMeans[0] == childMeans[1] && childMeans[1] == childMeans[2] && childMeans[2] == childMeans[3]
}

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

// gridBorderValue is the grayscale value used to draw segmentation
// borders onto the otherwise white grid canvas.
const gridBorderValue byte = 190

// RenderGrid produces a white canvas of side q.Width() with a
// one-pixel border drawn along the top and left edge of every
// uniform subtree's block, exposing the decomposition the tree
// used. Internal non-uniform nodes recurse into their children;
// recursion stops at the first uniform node on each path, so a
// uniform block's own uniform descendants contribute no extra
// borders.
func RenderGrid(q *Quadtree) *Raster {
	width := q.Width()
	r := NewRaster(width)
	r.Fill(255)
	gridRec(q, r, 0, 0, 0, width)
	return r
}

func gridRec(q *Quadtree, r *Raster, index, x, y, size int) {
	node := &q.Nodes[index]
	if node.Uniform {
		drawBlockBorder(r, x, y, size)
		return
	}

	childSize := size / 2
	gridRec(q, r, q.Child(index, 1), x, y, childSize)                     // top-left
	gridRec(q, r, q.Child(index, 2), x+childSize, y, childSize)           // top-right
	gridRec(q, r, q.Child(index, 3), x+childSize, y+childSize, childSize) // bottom-right
	gridRec(q, r, q.Child(index, 4), x, y+childSize, childSize)           // bottom-left
}

// drawBlockBorder draws the top edge (if y > 0) and left edge (if
// x > 0) of a size x size block, each clipped to the raster bounds.
func drawBlockBorder(r *Raster, x, y, size int) {
	if y > 0 {
		for i := 0; i < size && x+i < r.Width; i++ {
			r.Set(x+i, y-1, gridBorderValue)
		}
	}
	if x > 0 {
		for i := 0; i < size && y+i < r.Width; i++ {
			r.Set(x-1, y+i, gridBorderValue)
		}
	}
}

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

// Paint rasterizes a decoded (or built) quadtree by preorder
// traversal, writing each leaf's mean into the pixel block it
// covers.
func Paint(q *Quadtree) *Raster {
	width := q.Width()
	r := NewRaster(width)
	paintRec(q, r, 0, 0, 0, width)
	return r
}

func paintRec(q *Quadtree, r *Raster, index, x, y, size int) {
	node := &q.Nodes[index]
	if q.IsLeaf(index) {
		r.Set(x, y, node.Mean)
		return
	}

	childSize := size / 2
	paintRec(q, r, q.Child(index, 1), x, y, childSize)                     // top-left
	paintRec(q, r, q.Child(index, 2), x+childSize, y, childSize)           // top-right
	paintRec(q, r, q.Child(index, 3), x+childSize, y+childSize, childSize) // bottom-right
	paintRec(q, r, q.Child(index, 4), x, y+childSize, childSize)           // bottom-left
}

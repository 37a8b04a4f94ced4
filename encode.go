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

// Encode serializes a (possibly filtered) quadtree into a bit
// buffer: one header byte holding levels, then a preorder body that
// omits the mean of the fourth child of a non-uniform parent (it is
// interpolated at decode time) and omits all fields of any node
// whose parent is uniform.
func Encode(q *Quadtree) *BitBuffer {
	buf := NewBitBuffer()
	buf.Push(uint32(q.Levels), 8)

	for i := 0; i < q.TotalNodes; i++ {
		node := &q.Nodes[i]

		if i == 0 {
			writeNode(buf, node, i)
			continue
		}

		parent := &q.Nodes[q.Parent(i)]
		if parent.Uniform {
			continue
		}

		if q.IsLeaf(i) {
			writeLeaf(buf, node, i)
		} else {
			writeNode(buf, node, i)
		}
	}

	buf.Finish()
	return buf
}

// writeNode emits a non-leaf node's fields: mean (unless it is the
// fourth child, whose mean the decoder interpolates), epsilon, and
// the uniform bit when epsilon is zero.
func writeNode(buf *BitBuffer, node *Node, index int) {
	if index%4 != 0 || index == 0 {
		buf.Push(uint32(node.Mean), 8)
	}
	buf.Push(uint32(node.Epsilon), 2)
	if node.Epsilon == 0 {
		buf.Push(boolBit(node.Uniform), 1)
	}
}

// writeLeaf emits only a leaf's mean, and only if it is not the
// fourth child (epsilon and uniform are constant for a leaf).
func writeLeaf(buf *BitBuffer, node *Node, index int) {
	if index%4 != 0 {
		buf.Push(uint32(node.Mean), 8)
	}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

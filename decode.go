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

import "fmt"

// maxDecodeLevels bounds the levels byte read from a stream header
// so a corrupt header cannot trigger an unbounded allocation; 16
// levels is already a 65536x65536 image, far beyond anything this
// codec is meant to handle.
const maxDecodeLevels = 16

// Decode inverts Encode: it reads the levels header, allocates an
// empty tree of that depth, and fills nodes in heap-index order
// using the same parent-context rules the encoder used to omit
// fields.
func Decode(buf *BitBuffer) (*Quadtree, error) {
	levelsVal, err := buf.Pull(8)
	if err != nil {
		return nil, fmt.Errorf("qtc: decode: reading levels: %w", err)
	}
	levels := int(levelsVal)
	if levels < 0 || levels > maxDecodeLevels {
		return nil, fmt.Errorf("qtc: decode: levels %d out of range: %w", levels, ErrMalformedHeader)
	}
	// The smallest possible body is the root alone: mean(8) + epsilon(2)
	// + uniform(1). Anything shorter cannot be a valid payload for any
	// levels value, uniform or not.
	if buf.Remaining() < 11 {
		return nil, fmt.Errorf("qtc: decode: payload too short for levels %d: %w", levels, ErrMalformedHeader)
	}

	q := NewQuadtree(levels)

	for i := 0; i < q.TotalNodes; i++ {
		node := &q.Nodes[i]

		if i == 0 {
			if err := readNode(buf, node); err != nil {
				return nil, err
			}
			continue
		}

		parent := &q.Nodes[q.Parent(i)]
		if parent.Uniform {
			node.Mean = parent.Mean
			node.Epsilon = 0
			node.Uniform = true
			continue
		}

		if i%4 == 0 {
			if err := decodeFourthChild(buf, q, node, parent, i); err != nil {
				return nil, err
			}
			continue
		}

		if q.IsLeaf(i) {
			if err := readLeaf(buf, node); err != nil {
				return nil, err
			}
		} else {
			if err := readNode(buf, node); err != nil {
				return nil, err
			}
		}
	}

	return q, nil
}

// readNode reads a non-leaf node's mean, epsilon, and the uniform
// bit when epsilon is zero.
func readNode(buf *BitBuffer, node *Node) error {
	mean, err := buf.Pull(8)
	if err != nil {
		return fmt.Errorf("qtc: decode: reading mean: %w", err)
	}
	epsilon, err := buf.Pull(2)
	if err != nil {
		return fmt.Errorf("qtc: decode: reading epsilon: %w", err)
	}
	node.Mean = uint8(mean)
	node.Epsilon = uint8(epsilon)
	if node.Epsilon == 0 {
		u, err := buf.Pull(1)
		if err != nil {
			return fmt.Errorf("qtc: decode: reading uniform bit: %w", err)
		}
		node.Uniform = u != 0
	} else {
		node.Uniform = false
	}
	return nil
}

// readLeaf reads a leaf's mean; epsilon and uniform are constant.
func readLeaf(buf *BitBuffer, node *Node) error {
	mean, err := buf.Pull(8)
	if err != nil {
		return fmt.Errorf("qtc: decode: reading leaf mean: %w", err)
	}
	node.Mean = uint8(mean)
	node.Epsilon = 0
	node.Uniform = true
	return nil
}

// decodeFourthChild recovers the fourth child's mean from the
// parent's mean and epsilon and the three preceding siblings, which
// is exact because epsilon was defined as the remainder of that same
// sum divided by four.
func decodeFourthChild(buf *BitBuffer, q *Quadtree, node, parent *Node, index int) error {
	sum := 4*int32(parent.Mean) + int32(parent.Epsilon) -
		int32(q.Nodes[index-1].Mean) - int32(q.Nodes[index-2].Mean) - int32(q.Nodes[index-3].Mean)
	node.Mean = uint8(sum)

	if q.IsLeaf(index) {
		node.Epsilon = 0
		node.Uniform = true
		return nil
	}

	epsilon, err := buf.Pull(2)
	if err != nil {
		return fmt.Errorf("qtc: decode: reading 4th child epsilon: %w", err)
	}
	node.Epsilon = uint8(epsilon)
	if node.Epsilon == 0 {
		u, err := buf.Pull(1)
		if err != nil {
			return fmt.Errorf("qtc: decode: reading 4th child uniform bit: %w", err)
		}
		node.Uniform = u != 0
	} else {
		node.Uniform = false
	}
	return nil
}

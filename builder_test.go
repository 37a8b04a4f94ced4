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
	"errors"
	"testing"
)

func rasterFrom(width int, pix []byte) *Raster {
	return &Raster{Width: width, Pix: pix}
}

func TestBuildInvalidDimensions(t *testing.T) {
	tests := []struct {
		name  string
		width int
		n     int
	}{
		{"width 3", 3, 9},
		{"width 0", 0, 0},
		{"width 6", 6, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rasterFrom(tt.width, make([]byte, tt.n))
			if _, err := Build(r, 255); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Build: err = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestBuildInvalidPixel(t *testing.T) {
	r := rasterFrom(2, []byte{10, 20, 30, 200})
	if _, err := Build(r, 100); !errors.Is(err, ErrInvalidPixel) {
		t.Errorf("Build: err = %v, want ErrInvalidPixel", err)
	}
}

func TestBuildSinglePixel(t *testing.T) {
	r := rasterFrom(1, []byte{128})
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q.Levels != 0 || q.TotalNodes != 1 {
		t.Fatalf("Levels=%d TotalNodes=%d, want 0, 1", q.Levels, q.TotalNodes)
	}
	root := q.Nodes[0]
	if root.Mean != 128 || root.Epsilon != 0 || !root.Uniform || root.Variance != 0 {
		t.Errorf("root = %+v, want mean=128 epsilon=0 uniform=true variance=0", root)
	}
}

func TestBuildUniform2x2(t *testing.T) {
	r := rasterFrom(2, []byte{10, 10, 10, 10})
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := q.Nodes[0]
	if root.Mean != 10 || root.Epsilon != 0 || !root.Uniform {
		t.Errorf("root = %+v, want mean=10 epsilon=0 uniform=true", root)
	}
}

func TestBuildNonUniform2x2(t *testing.T) {
	// clockwise order: TL, TR, BR, BL -> pixel positions (0,0) (1,0) (1,1) (0,1);
	// the raster is row-major, so rows 10 20 / 30 40 give children 10 20 40 30
	r := rasterFrom(2, []byte{10, 20, 30, 40})
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := q.Nodes[0]
	if root.Mean != 25 || root.Epsilon != 0 || root.Uniform {
		t.Errorf("root = %+v, want mean=25 epsilon=0 uniform=false", root)
	}
	if q.Nodes[1].Mean != 10 || q.Nodes[2].Mean != 20 || q.Nodes[3].Mean != 40 || q.Nodes[4].Mean != 30 {
		t.Errorf("children means = %d %d %d %d, want 10 20 40 30",
			q.Nodes[1].Mean, q.Nodes[2].Mean, q.Nodes[3].Mean, q.Nodes[4].Mean)
	}
}

func TestBuildMeanEpsilonInvariant(t *testing.T) {
	pix := make([]byte, 16*16)
	for i := range pix {
		pix[i] = byte((i*37 + 11) % 256)
	}
	r := rasterFrom(16, pix)
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	nonLeaf := q.TotalNodes - (1 << (2 * q.Levels))
	for i := 0; i < nonLeaf; i++ {
		node := q.Nodes[i]
		var sum int
		for k := 1; k <= 4; k++ {
			sum += int(q.Nodes[q.Child(i, k)].Mean)
		}
		if got := int(node.Mean)*4 + int(node.Epsilon); got != sum {
			t.Errorf("node %d: mean*4+epsilon = %d, want %d (sum of children means)", i, got, sum)
		}
		if node.Uniform && node.Epsilon != 0 {
			t.Errorf("node %d: uniform but epsilon = %d, want 0", i, node.Epsilon)
		}
	}
}

func TestBuildLeavesMatchPixels(t *testing.T) {
	pix := make([]byte, 4*4)
	for i := range pix {
		pix[i] = byte(i * 5)
	}
	r := rasterFrom(4, pix)
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	painted := Paint(q)
	for i, want := range pix {
		if got := painted.Pix[i]; got != want {
			t.Errorf("painted.Pix[%d] = %d, want %d", i, got, want)
		}
	}
}

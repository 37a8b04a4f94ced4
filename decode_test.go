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

func TestDecodeRejectsOutOfRangeLevels(t *testing.T) {
	buf := NewBitBuffer()
	buf.Push(200, 8) // no byte value above maxDecodeLevels is a valid header
	buf.Finish()

	read := NewBitBufferFromBytes(buf.Bytes())
	if _, err := Decode(read); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Decode: err = %v, want ErrMalformedHeader", err)
	}
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	buf := NewBitBuffer()
	buf.Push(0, 8)   // levels = 0
	buf.Push(1, 4)   // far short of the 11 bits a levels=0 body needs
	buf.Finish()

	read := NewBitBufferFromBytes(buf.Bytes())
	if _, err := Decode(read); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Decode: err = %v, want ErrMalformedHeader", err)
	}
}

func TestDecodeRoundTripSinglePixel(t *testing.T) {
	r := rasterFrom(1, []byte{128})
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decoded, err := Decode(NewBitBufferFromBytes(Encode(q).Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Nodes[0] != q.Nodes[0] {
		t.Errorf("decoded root = %+v, want %+v", decoded.Nodes[0], q.Nodes[0])
	}
}

func TestDecodeRoundTripNonUniform(t *testing.T) {
	r := rasterFrom(2, []byte{10, 20, 30, 40})
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decoded, err := Decode(NewBitBufferFromBytes(Encode(q).Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range q.Nodes {
		if decoded.Nodes[i].Mean != q.Nodes[i].Mean ||
			decoded.Nodes[i].Epsilon != q.Nodes[i].Epsilon ||
			decoded.Nodes[i].Uniform != q.Nodes[i].Uniform {
			t.Errorf("node %d: decoded = %+v, want %+v", i, decoded.Nodes[i], q.Nodes[i])
		}
	}
}

func TestDecodeRoundTripAfterFilter(t *testing.T) {
	pix := make([]byte, 64)
	for i := range pix {
		pix[i] = byte((i * 3) % 256)
	}
	r := rasterFrom(8, pix)
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := Filter(q, 1.2); err != nil {
		t.Fatalf("Filter: %v", err)
	}

	decoded, err := Decode(NewBitBufferFromBytes(Encode(q).Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	original := Paint(q)
	roundTripped := Paint(decoded)
	for i := range original.Pix {
		if original.Pix[i] != roundTripped.Pix[i] {
			t.Errorf("pixel %d: round-tripped = %d, want %d", i, roundTripped.Pix[i], original.Pix[i])
		}
	}
}

func TestDecodeRoundTripUniformSubtree(t *testing.T) {
	r := rasterFrom(4, make([]byte, 16))
	q, err := Build(r, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decoded, err := Decode(NewBitBufferFromBytes(Encode(q).Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range decoded.Nodes {
		if !decoded.Nodes[i].Uniform || decoded.Nodes[i].Mean != 0 {
			t.Errorf("node %d = %+v, want Uniform=true Mean=0", i, decoded.Nodes[i])
		}
	}
}

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

import "errors"

// Sentinel errors surfaced by the core package. Callers compare
// against these with errors.Is; every returned error is one of them
// or wraps one of them with %w.
var (
	// ErrInvalidDimensions means the raster side is not a positive
	// power of two.
	ErrInvalidDimensions = errors.New("qtc: raster side is not a positive power of two")
	// ErrInvalidPixel means a raster byte exceeds the supplied
	// maximum grayscale value.
	ErrInvalidPixel = errors.New("qtc: pixel value out of range")
	// ErrInvalidAlpha means alpha is not strictly positive.
	ErrInvalidAlpha = errors.New("qtc: alpha must be greater than 0")
	// ErrUnderflow means the decoder requested more bits than the
	// bit buffer has left.
	ErrUnderflow = errors.New("qtc: bit buffer underflow")
	// ErrMalformedHeader means the declared levels value cannot be
	// satisfied by the available payload.
	ErrMalformedHeader = errors.New("qtc: malformed stream header")
	// ErrAllocationFailure means the host ran out of memory while
	// allocating a tree or raster.
	ErrAllocationFailure = errors.New("qtc: allocation failure")
)

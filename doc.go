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

// Package qtc implements a grayscale image codec built on a complete
// quadtree decomposition of square, power-of-two-sided images. It
// covers lossless encoding, variance-driven lossy pruning, decoding,
// and rendering the segmentation grid a tree's decomposition
// implies. File formats, argument parsing and filesystem I/O live
// outside this package, in internal/pgm, internal/container and
// cmd/qtc.
package qtc

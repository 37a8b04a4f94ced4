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

// Package container reads and writes the Q1 container: a text
// header (magic line plus '#' comment lines) wrapped around the
// opaque bit-packed payload a qtc.Encode/Decode pair exchanges. It
// has no notion of quadtrees; it only frames a byte slice.
package container

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrInvalidMagic is returned when the first line of a container
// is not the Q1 magic.
var ErrInvalidMagic = errors.New("container: invalid magic")

const magic = "Q1"

// Write frames payload as a Q1 container: the magic line, a
// compression-date comment, a compression-rate comment computed
// against width (the side length of the uncompressed square
// raster), and, if runID is non-empty, an encoder-run comment
// carrying it for traceability between a log line and the file it
// produced.
func Write(w io.Writer, payload []byte, width int, runID string) error {
	if _, err := io.WriteString(w, magic+"\n"); err != nil {
		return fmt.Errorf("container: writing magic: %w", err)
	}
	if _, err := fmt.Fprintf(w, "# Compression date : %s\n", time.Now().Format(time.RFC1123)); err != nil {
		return fmt.Errorf("container: writing date comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "# Compression rate %.2f%%\n", compressionRate(payload, width)); err != nil {
		return fmt.Errorf("container: writing rate comment: %w", err)
	}
	if runID != "" {
		if _, err := fmt.Fprintf(w, "# Encoder run : %s\n", runID); err != nil {
			return fmt.Errorf("container: writing run comment: %w", err)
		}
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("container: writing payload: %w", err)
	}
	return nil
}

// compressionRate reports the percentage the encoded payload takes
// relative to the uncompressed width x width 8-bit raster,
// excluding the one-byte levels header from the numerator.
func compressionRate(payload []byte, width int) float64 {
	originalBits := width * width * 8
	if originalBits == 0 {
		return 0
	}
	compressedBits := (len(payload) - 1) * 8
	return 100.0 * float64(compressedBits) / float64(originalBits)
}

// Read validates the magic line, skips any number of leading '#'
// comment lines regardless of their content or order, and returns
// the raw payload starting at the first non-comment byte.
func Read(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("container: reading magic: %w", err)
	}
	if strings.TrimRight(line, "\r\n") != magic {
		return nil, fmt.Errorf("container: magic %q: %w", strings.TrimSpace(line), ErrInvalidMagic)
	}

	for {
		peeked, err := br.Peek(1)
		if err != nil {
			break
		}
		if peeked[0] != '#' {
			break
		}
		if _, err := br.ReadString('\n'); err != nil {
			break
		}
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("container: reading payload: %w", err)
	}
	return payload, nil
}

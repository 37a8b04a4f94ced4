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

// Package pgm reads and writes grayscale PGM images (the Netpbm P2
// ASCII and P5 binary formats). It knows nothing about quadtrees or
// the QTC wire format; it is a plain raster codec the rest of the
// project builds on.
package pgm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidPixel is returned when a decoded pixel value falls
// outside [0, maxVal].
var ErrInvalidPixel = errors.New("pgm: pixel value out of range")

// ErrUnsupportedFormat is returned for a magic number other than P2
// or P5.
var ErrUnsupportedFormat = errors.New("pgm: unsupported format")

// Image is a decoded grayscale raster together with the header
// fields a PGM file carries.
type Image struct {
	Width  int
	Height int
	MaxVal int
	Pix    []byte
}

// Read decodes a PGM image (P2 or P5) from r, skipping any comment
// lines PGM allows between the magic number and the pixel data.
func Read(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("pgm: reading magic number: %w", err)
	}

	switch magic {
	case "P2":
		return readAscii(br)
	case "P5":
		return readBinary(br)
	default:
		return nil, fmt.Errorf("pgm: magic %q: %w", magic, ErrUnsupportedFormat)
	}
}

// readToken reads whitespace-delimited tokens, skipping any '#'
// comment that runs to end of line, wherever it appears between
// tokens. This is how the header fields (magic, width, height,
// maxval) are meant to be tokenized: from the stream itself, never
// from a line buffer left over from a previous read.
func readToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
			continue
		}
		if isSpace(b) {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func readHeader(br *bufio.Reader) (width, height, maxVal int, err error) {
	width, err = readInt(br)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("pgm: reading width: %w", err)
	}
	height, err = readInt(br)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("pgm: reading height: %w", err)
	}
	maxVal, err = readInt(br)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("pgm: reading max value: %w", err)
	}
	return width, height, maxVal, nil
}

func readInt(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

func readAscii(br *bufio.Reader) (*Image, error) {
	width, height, maxVal, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	img := &Image{Width: width, Height: height, MaxVal: maxVal, Pix: make([]byte, width*height)}
	for i := 0; i < len(img.Pix); i++ {
		v, err := readInt(br)
		if err != nil {
			return nil, fmt.Errorf("pgm: reading pixel %d: %w", i, err)
		}
		if v < 0 || v > maxVal {
			return nil, fmt.Errorf("pgm: pixel %d = %d, max %d: %w", i, v, maxVal, ErrInvalidPixel)
		}
		img.Pix[i] = byte(v)
	}
	return img, nil
}

func readBinary(br *bufio.Reader) (*Image, error) {
	width, height, maxVal, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	// A single whitespace character (conventionally '\n') separates
	// the maxval token from the raw pixel bytes; readInt already
	// consumed it as the token delimiter.
	img := &Image{Width: width, Height: height, MaxVal: maxVal, Pix: make([]byte, width*height)}
	if _, err := io.ReadFull(br, img.Pix); err != nil {
		return nil, fmt.Errorf("pgm: reading pixel data: %w", err)
	}
	for i, v := range img.Pix {
		if int(v) > maxVal {
			return nil, fmt.Errorf("pgm: pixel %d = %d, max %d: %w", i, v, maxVal, ErrInvalidPixel)
		}
	}
	return img, nil
}

// WriteOptions controls how Write serializes an Image.
type WriteOptions struct {
	// Ascii selects the P2 text format instead of the default P5
	// binary format; useful for debugging and diffing output by eye.
	Ascii bool
}

// Write encodes img to w as a PGM file, defaulting to P5 unless
// opts.Ascii is set.
func Write(w io.Writer, img *Image, opts WriteOptions) error {
	if opts.Ascii {
		return writeAscii(w, img)
	}
	return writeBinary(w, img)
}

func writeBinary(w io.Writer, img *Image) error {
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n%d\n", img.Width, img.Height, img.MaxVal); err != nil {
		return fmt.Errorf("pgm: writing header: %w", err)
	}
	if _, err := w.Write(img.Pix); err != nil {
		return fmt.Errorf("pgm: writing pixel data: %w", err)
	}
	return nil
}

func writeAscii(w io.Writer, img *Image) error {
	if _, err := fmt.Fprintf(w, "P2\n%d %d\n%d\n", img.Width, img.Height, img.MaxVal); err != nil {
		return fmt.Errorf("pgm: writing header: %w", err)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			sep := " "
			if x == img.Width-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%d%s", img.Pix[y*img.Width+x], sep); err != nil {
				return fmt.Errorf("pgm: writing pixel data: %w", err)
			}
		}
	}
	return nil
}

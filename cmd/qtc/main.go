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

// Command qtc encodes PGM images into the QTC quadtree format and
// decodes them back, optionally rendering the segmentation grid a
// tree's decomposition implies.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/holtzscape/qtc"
	"github.com/holtzscape/qtc/internal/container"
	"github.com/holtzscape/qtc/internal/pgm"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("qtc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	encode := fs.Bool("c", false, "encode a PGM image into QTC format")
	decode := fs.Bool("u", false, "decode a QTC file into a PGM image")
	grid := fs.Bool("g", false, "also emit a segmentation grid PGM")
	input := fs.String("i", "", "input file")
	output := fs.String("o", "", "output file (default QTC/out.qtc or PGM/out.pgm)")
	alpha := fs.Float64("a", 0, "enable lossy filtering with the given alpha (encode only)")
	verbose := fs.Bool("v", false, "enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [-c|-u] [-g] [-v] -i input [-o output] [-a alpha]\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := log.New(stderr, "", 0)
	if !*verbose {
		logger.SetOutput(io.Discard)
	}
	runID := uuid.New().String()
	logger.SetPrefix(fmt.Sprintf("[qtc %s] ", runID))

	if *encode == *decode {
		fs.Usage()
		return errors.New("qtc: choose exactly one of -c (encode) or -u (decode)")
	}
	if *input == "" {
		fs.Usage()
		return errors.New("qtc: an input file is required (-i)")
	}
	if *alpha < 0 {
		return errors.New("qtc: alpha must be greater than or equal to 0")
	}

	matches, err := filepath.Glob(*input)
	if err != nil {
		return fmt.Errorf("qtc: invalid -i pattern %q: %w", *input, err)
	}
	if len(matches) == 0 {
		matches = []string{*input} // not a glob, or a glob matching nothing; let the open below report the real error
	}
	slices.Sort(matches)
	batch := len(matches) > 1

	for _, inFile := range matches {
		out := resolveOutput(*output, inFile, *encode, batch)
		gridFile := ""
		if *grid {
			gridFile = filepath.Join("PGM", gridFileName(out))
		}

		if *encode {
			if err := safely(func() error { return runEncode(logger, runID, inFile, out, gridFile, *alpha) }); err != nil {
				return err
			}
			continue
		}
		if err := safely(func() error { return runDecode(logger, inFile, out, gridFile) }); err != nil {
			return err
		}
	}
	return nil
}

// safely runs fn, converting a panic (the only way an out-of-memory
// allocation surfaces in Go, since make does not return an error) to
// qtc.ErrAllocationFailure instead of crashing the process.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("qtc: %v: %w", r, qtc.ErrAllocationFailure)
		}
	}()
	return fn()
}

// resolveOutput computes the output path for one input file. With a
// single input, explicit takes precedence verbatim and an empty
// explicit falls back to the reference tool's fixed default. With a
// batch of several inputs (an -i glob matching more than one file),
// explicit is instead treated as a destination directory (the
// default directory when empty) and each input contributes its own
// base name with the target extension.
func resolveOutput(explicit, inFile string, encode, batch bool) string {
	dir, ext := "PGM", "pgm"
	if encode {
		dir, ext = "QTC", "qtc"
	}

	if !batch {
		if explicit != "" {
			return explicit
		}
		return filepath.Join(dir, "out."+ext)
	}

	if explicit != "" {
		dir = explicit
	}
	base := filepath.Base(inFile)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "." + ext
	return filepath.Join(dir, name)
}

// gridFileName derives "<basename>_g.pgm" from an output path's
// base name, matching the reference tool's grid-naming convention.
func gridFileName(out string) string {
	base := filepath.Base(out)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_g.pgm"
}

func hasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), "."+ext)
}

func runEncode(logger *log.Logger, runID, inputPath, outputPath, gridPath string, alpha float64) error {
	if !hasExtension(inputPath, "pgm") {
		return errors.New("qtc: input file must be in PGM format (check the -i extension)")
	}

	logger.Printf("encoding %s", inputPath)

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("qtc: opening input: %w", err)
	}
	defer f.Close()

	img, err := pgm.Read(f)
	if err != nil {
		return fmt.Errorf("qtc: reading PGM: %w", err)
	}
	if img.Width != img.Height {
		return errors.New("qtc: image must be square")
	}

	raster := &qtc.Raster{Width: img.Width, Pix: img.Pix}
	tree, err := qtc.Build(raster, img.MaxVal)
	if err != nil {
		return fmt.Errorf("qtc: building quadtree: %w", err)
	}
	logger.Printf("built quadtree, levels=%d", tree.Levels)

	if alpha > 0 {
		if err := qtc.Filter(tree, alpha); err != nil {
			return fmt.Errorf("qtc: filtering: %w", err)
		}
		logger.Printf("applied lossy filtering with alpha=%.2f", alpha)
	}

	if gridPath != "" {
		if err := writeGrid(logger, tree, gridPath); err != nil {
			return err
		}
	}

	payload := qtc.Encode(tree).Bytes()
	if err := writeFile(outputPath, func(w io.Writer) error {
		return container.Write(w, payload, tree.Width(), runID)
	}); err != nil {
		return fmt.Errorf("qtc: writing QTC file: %w", err)
	}
	logger.Printf("encoding complete, wrote %s", outputPath)
	return nil
}

func runDecode(logger *log.Logger, inputPath, outputPath, gridPath string) error {
	if !hasExtension(inputPath, "qtc") {
		return errors.New("qtc: input file must be in QTC format (check the -i extension)")
	}

	logger.Printf("decoding %s", inputPath)

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("qtc: opening input: %w", err)
	}
	defer f.Close()

	payload, err := container.Read(f)
	if err != nil {
		return fmt.Errorf("qtc: reading container: %w", err)
	}

	tree, err := qtc.Decode(qtc.NewBitBufferFromBytes(payload))
	if err != nil {
		return fmt.Errorf("qtc: decoding: %w", err)
	}
	logger.Printf("decoded quadtree, levels=%d", tree.Levels)

	raster := qtc.Paint(tree)
	img := &pgm.Image{Width: raster.Width, Height: raster.Width, MaxVal: 255, Pix: raster.Pix}
	if err := writeFile(outputPath, func(w io.Writer) error {
		return pgm.Write(w, img, pgm.WriteOptions{})
	}); err != nil {
		return fmt.Errorf("qtc: writing PGM file: %w", err)
	}

	if gridPath != "" {
		if err := writeGrid(logger, tree, gridPath); err != nil {
			return err
		}
	}

	logger.Printf("decoding complete, wrote %s", outputPath)
	return nil
}

func writeGrid(logger *log.Logger, tree *qtc.Quadtree, gridPath string) error {
	logger.Printf("generating segmentation grid")
	grid := qtc.RenderGrid(tree)
	img := &pgm.Image{Width: grid.Width, Height: grid.Width, MaxVal: 255, Pix: grid.Pix}
	if err := writeFile(gridPath, func(w io.Writer) error {
		return pgm.Write(w, img, pgm.WriteOptions{})
	}); err != nil {
		return fmt.Errorf("qtc: writing segmentation grid: %w", err)
	}
	logger.Printf("segmentation grid written: %s", gridPath)
	return nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return encode(f)
}

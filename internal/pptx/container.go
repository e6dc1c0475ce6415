// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx reads named XML parts out of a PresentationML (.pptx) container
// and parses them into attribute-free Node trees.
package pptx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

const (
	// PresentationPart lists the slides of the deck.
	PresentationPart = "ppt/presentation.xml"
)

// ErrPartNotFound is returned when a container has no part of the requested name.
var ErrPartNotFound = errors.New("part not found")

// SlidePart returns the part name of the 1-based slide n.
func SlidePart(n int) string {
	return fmt.Sprintf("ppt/slides/slide%d.xml", n)
}

// Container is an open .pptx file. Parts may be read concurrently.
type Container struct {
	path  string
	zr    *zip.ReadCloser
	parts map[string]*zip.File
}

// Open opens the .pptx file at path.
func Open(path string) (*Container, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	return &Container{path: path, zr: zr, parts: parts}, nil
}

// Close releases the underlying file.
func (c *Container) Close() error {
	return c.zr.Close()
}

// Part returns the raw bytes of the named part.
func (c *Container) Part(name string) ([]byte, error) {
	f, ok := c.parts[name]
	if !ok {
		return nil, fmt.Errorf("%s in %s: %w", name, c.path, ErrPartNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s in %s: %w", name, c.path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s in %s: %w", name, c.path, err)
	}
	return data, nil
}

// Tree reads the named part and parses it into a Node tree.
func (c *Container) Tree(name string) (Node, error) {
	data, err := c.Part(name)
	if err != nil {
		return nil, err
	}
	tree, err := ParseTree(data)
	if err != nil {
		return nil, fmt.Errorf("%s in %s: %w", name, c.path, err)
	}
	return tree, nil
}

// SlideCount returns the number of slides listed in the presentation part.
func (c *Container) SlideCount() (int, error) {
	tree, err := c.Tree(PresentationPart)
	if err != nil {
		return 0, err
	}
	return CountSlides(tree), nil
}

// CountSlides counts the p:sldId entries of a parsed presentation part.
func CountSlides(presentation Node) int {
	ids, ok := Lookup(presentation, "p:presentation", "p:sldIdLst", "p:sldId")
	if !ok {
		return 0
	}
	return len(Items(ids))
}

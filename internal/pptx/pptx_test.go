// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pptx2pro/internal/pptx/pptxtest"
)

func TestParseTree(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<a:root xmlns:a="urn:a"><a:one x="1">hi</a:one><a:two/><a:one>there</a:one>tail</a:root>`)

	tree, err := ParseTree(data)
	require.NoError(t, err)

	root, ok := Lookup(tree, "a:root")
	require.True(t, ok)
	k, ok := root.(Keyed)
	require.True(t, ok, "root should be Keyed, got %T", root)

	require.Len(t, k, 3)
	assert.Equal(t, "a:one", k[0].Name)
	assert.Equal(t, List{Text("hi"), Text("there")}, k[0].Value)
	assert.Equal(t, "a:two", k[1].Name)
	assert.Equal(t, Text(""), k[1].Value)
	assert.Equal(t, TextField, k[2].Name)
	assert.Equal(t, Text("tail"), k[2].Value)
}

func TestParseTree_Malformed(t *testing.T) {
	_, err := ParseTree([]byte(`<a><b></a>`))
	assert.Error(t, err)
}

func TestItems(t *testing.T) {
	assert.Nil(t, Items(nil))
	assert.Equal(t, []Node{Text("x")}, Items(Text("x")))
	assert.Equal(t, []Node{Text("x"), Text("y")}, Items(List{Text("x"), Text("y")}))
}

func TestContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sb7.pptx")
	pptxtest.Write(t, path,
		pptxtest.Slide{{"Body"}, {"Title"}},
		pptxtest.Slide{{"Verse"}, {"SB7 V1"}},
		pptxtest.Slide{},
	)

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	n, err := c.SlideCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tree, err := c.Tree(SlidePart(2))
	require.NoError(t, err)
	shapes, ok := Lookup(tree, "p:sld", "p:cSld", "p:spTree", "p:sp")
	require.True(t, ok)
	assert.Len(t, Items(shapes), 2)

	_, err = c.Part("ppt/slides/slide9.xml")
	assert.True(t, errors.Is(err, ErrPartNotFound), "got %v", err)
}

func TestCountSlides(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"none", 0},
		{"one", 1},
		{"many", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseTree([]byte(pptxtest.PresentationXML(tt.n)))
			require.NoError(t, err)
			assert.Equal(t, tt.n, CountSlides(tree))
		})
	}
}

func TestOpen_NotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sb1.pptx")
	pptxtest.WriteParts(t, path, map[string]string{"other.txt": "x"})

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.SlideCount()
	assert.True(t, errors.Is(err, ErrPartNotFound))

	_, err = Open(filepath.Join(t.TempDir(), "missing.pptx"))
	assert.Error(t, err)
}

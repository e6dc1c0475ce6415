// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptxtest builds small .pptx containers for tests.
package pptxtest

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"testing"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// RunBreak splits a paragraph entry into separate runs, the way PowerPoint
// breaks a line on a formatting or language change.
const RunBreak = "\x1f"

// Shape is one text shape: each entry is a paragraph, written as one run per
// RunBreak-separated part. A nil Shape is written without a text body.
type Shape []string

// Slide lists the shapes of one slide in document order.
type Slide []Shape

// Write creates a .pptx at path containing a presentation part and one part
// per slide.
func Write(t *testing.T, path string, slides ...Slide) {
	t.Helper()
	parts := map[string]string{
		"ppt/presentation.xml": PresentationXML(len(slides)),
	}
	for i, s := range slides {
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = SlideXML(s)
	}
	WriteParts(t, path, parts)
}

// WriteParts creates a zip at path with the given part names and contents.
func WriteParts(t *testing.T, path string, parts map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// PresentationXML returns a presentation part listing n slides.
func PresentationXML(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if n > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	b.WriteString(`<p:sldSz cx="12192000" cy="6858000"/></p:presentation>`)
	return b.String()
}

// SlideXML returns a slide part with the given shapes.
func SlideXML(s Slide) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld><p:spTree>`, nsA, nsR, nsP)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for i, shape := range s {
		fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr/>`, i+2, i+1)
		if shape != nil {
			b.WriteString(`<p:txBody><a:bodyPr wrap="square"><a:spAutoFit/></a:bodyPr><a:lstStyle/>`)
			for _, para := range shape {
				b.WriteString(`<a:p>`)
				for _, run := range strings.Split(para, RunBreak) {
					b.WriteString(`<a:r><a:rPr lang="en-US" dirty="0"/><a:t>`)
					xml.EscapeText(&b, []byte(run))
					b.WriteString(`</a:t></a:r>`)
				}
				b.WriteString(`<a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
			}
			b.WriteString(`</p:txBody>`)
		}
		b.WriteString(`</p:sp>`)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

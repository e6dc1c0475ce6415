// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const rtfTemplate = `{\rtf1\ansi\ansicpg1252\cocoartf2513
\cocoatextscaling0\cocoaplatform0{\fonttbl\f0\fswiss\fcharset0 %s;}
{\colortbl;\red255\green255\blue255;}
{\*\expandedcolortbl;;}
\deftab720
\pard\pardeftab720\%s\partightenfactor0

%s`

var rtfEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	"’", `\'92`,
	"\n", "\\\n",
)

// EscapeRTF escapes text for an RTF body. Line breaks become RTF line
// continuations and the right single quote is written as a cp1252 hex escape.
func EscapeRTF(s string) string {
	return rtfEscaper.Replace(s)
}

func rtf(font, align, body string) string {
	return fmt.Sprintf(rtfTemplate, font, align, body)
}

// CaptionRTF is the small right-aligned caption naming the hymn and group.
func CaptionRTF(text string) string {
	return rtf("Helvetica", "qr", `\f0\fs120 \cf1 `+EscapeRTF(text)+"}")
}

// TitleRTF is the bold centered song title.
func TitleRTF(text string) string {
	return rtf("Helvetica-Bold", "qc", `\f0\b\fs180 \cf1  `+EscapeRTF(text)+"}")
}

// BodyRTF is the centered verse text.
func BodyRTF(text string) string {
	return rtf("Helvetica", "qc", `\f0\fs180 \cf1`+EscapeRTF(text)+`}\cf0`)
}

func encode(rtf string) string {
	return base64.StdEncoding.EncodeToString([]byte(rtf))
}

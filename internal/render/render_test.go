package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSize(t *testing.T) {
	src := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	img, err := Renderer{Padding: 10}.Image("main.go", src)
	require.NoError(t, err)

	// longest line is `    println("hi")` after tab expansion
	wantCols := len(`    println("hi")`)
	assert.Equal(t, 2*10+wantCols*face.Advance, img.Bounds().Dx())
	assert.Equal(t, 2*10+5*(face.Height+lineSpacing), img.Bounds().Dy())
}

func TestPNGDecodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Renderer{}.PNG(&buf, "hello.swift", `print("Hello, world!")`))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 2*defaultPadding)
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	_, err := Renderer{}.Image("notes.unknownext", "just some text")
	assert.NoError(t, err)
}

func TestPrintable(t *testing.T) {
	assert.Equal(t, "a?b", printable("a→b"))
}

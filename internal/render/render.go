// Package render draws syntax-highlighted source code into PNG images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultStyle is the chroma style used when none is configured.
	DefaultStyle = "github"

	defaultPadding = 16
	lineSpacing    = 3
	tabWidth       = 4
)

var face = basicfont.Face7x13

// Renderer turns code into images.
type Renderer struct {
	Style   string
	Padding int
}

// PNG renders source and encodes it into w.
func (r Renderer) PNG(w io.Writer, filename, source string) error {
	img, err := r.Image(filename, source)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

type span struct {
	text   string
	colour color.Color
}

// Image renders source, picking the lexer from the file name.
func (r Renderer) Image(filename, source string) (*image.RGBA, error) {
	style := styles.Get(r.styleName())
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.ReplaceAll(source, "\t", strings.Repeat(" ", tabWidth)))
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", filename, err)
	}

	fg := toColor(style.Get(chroma.Text).Colour, color.Black)
	lines := [][]span{nil}
	for _, tok := range it.Tokens() {
		c := toColor(style.Get(tok.Type).Colour, fg)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], span{text: printable(part), colour: c})
			}
		}
	}
	for len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return r.draw(lines, toColor(style.Get(chroma.Background).Background, color.White)), nil
}

func (r Renderer) draw(lines [][]span, bg color.Color) *image.RGBA {
	pad := r.padding()
	advance := face.Advance
	lineHeight := face.Height + lineSpacing

	cols := 1
	for _, line := range lines {
		n := 0
		for _, s := range line {
			n += len(s.text)
		}
		cols = max(cols, n)
	}

	bounds := image.Rect(0, 0, 2*pad+cols*advance, 2*pad+len(lines)*lineHeight)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: face}
	for row, line := range lines {
		d.Dot = fixed.P(pad, pad+row*lineHeight+face.Ascent)
		for _, s := range line {
			d.Src = image.NewUniform(s.colour)
			d.DrawString(s.text)
		}
	}
	return img
}

func (r Renderer) styleName() string {
	if r.Style == "" {
		return DefaultStyle
	}
	return r.Style
}

func (r Renderer) padding() int {
	if r.Padding <= 0 {
		return defaultPadding
	}
	return r.Padding
}

func toColor(c chroma.Colour, fallback color.Color) color.Color {
	if !c.IsSet() {
		return fallback
	}
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}

// printable replaces runes the bitmap font cannot draw so columns stay aligned.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || r > '~' {
			return '?'
		}
		return r
	}, s)
}

package tileset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
)

// Row block kinds, the second byte of each row header
const (
	rowSkip = 1
	rowEnd  = 2
)

// Pixel run modes, the second byte of each run within a row
const (
	modeNone    = 0
	modeSpacer  = 2
	modeSkip    = 3
	modeLiteral = 4

	// Rows shorter than this hold no runs
	minRow = 3
)

var (
	errNotEnough = errors.New("tileset: not enough pixel data")
	errTooMuch   = errors.New("tileset: pixels outside the shape")
	errBadMode   = errors.New("tileset: unknown pixel run mode")

	endBlock = []byte{0x02, 0x02}
)

// Rows splits the encoded pixel data into one block per row.
func (s *Shape) Rows() ([][]byte, error) {
	var rows [][]byte
	for p := 0; ; {
		if p+2 > len(s.Data) {
			return nil, errNotEnough
		}
		n, kind := int(s.Data[p]), s.Data[p+1]
		if kind == rowEnd {
			break
		}
		p += 2
		if p+n > len(s.Data) {
			return nil, errNotEnough
		}
		block := s.Data[p : p+n]
		if kind == rowSkip && bytes.Equal(block, endBlock) {
			break
		}
		rows = append(rows, block)
		p += n
	}
	return rows, nil
}

// Sprite is a decoded shape. Pixels not drawn by the shape are transparent.
type Sprite struct {
	Width  int
	Height int
	// Pix holds one palette index per pixel, row-major
	Pix    []uint8
	Opaque []bool
}

// At returns the palette index at x, y and whether the pixel is drawn.
func (sp *Sprite) At(x, y int) (uint8, bool) {
	if x < 0 || x >= sp.Width || y < 0 || y >= sp.Height {
		return 0, false
	}
	i := y*sp.Width + x
	return sp.Pix[i], sp.Opaque[i]
}

// Image returns the sprite coloured with p, which should be the game's
// palette. Transparent pixels are left clear.
func (sp *Sprite) Image(p color.Palette) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, sp.Width, sp.Height))
	for y := 0; y < sp.Height; y++ {
		for x := 0; x < sp.Width; x++ {
			if i, ok := sp.At(x, y); ok && int(i) < len(p) {
				m.Set(x, y, p[i])
			}
		}
	}
	return m
}

type decoder struct {
	sprite *Sprite
}

func (d *decoder) set(x, y int, v uint8) error {
	if x >= d.sprite.Width || y >= d.sprite.Height {
		return errTooMuch
	}
	i := y*d.sprite.Width + x
	d.sprite.Pix[i] = v
	d.sprite.Opaque[i] = true
	return nil
}

func (d *decoder) decodeRow(y int, row []byte) error {
	x := 0
	for p := 0; p < len(row); {
		if p+2 > len(row) {
			return errNotEnough
		}
		n, mode := int(row[p]), row[p+1]
		p += 2
		switch mode {
		case modeNone, modeSpacer:
		case modeSkip:
			x += n
		case modeLiteral:
			if p+n > len(row) {
				return errNotEnough
			}
			for _, v := range row[p : p+n] {
				if err := d.set(x, y, v); err != nil {
					return err
				}
				x++
			}
			p += n
			// Runs are padded to an even length
			if n%2 != 0 {
				p++
			}
		default:
			return errBadMode
		}
	}
	return nil
}

// Decode expands the shape's pixel rows.
func (s *Shape) Decode() (*Sprite, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) > s.Height {
		return nil, errTooMuch
	}

	d := decoder{
		sprite: &Sprite{
			Width:  s.Width,
			Height: s.Height,
			Pix:    make([]uint8, s.Width*s.Height),
			Opaque: make([]bool, s.Width*s.Height),
		},
	}

	for y, row := range rows {
		if len(row) < minRow {
			continue
		}
		if err := d.decodeRow(y, row); err != nil {
			return nil, err
		}
	}

	return d.sprite, nil
}

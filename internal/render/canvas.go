package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/palette"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-cell drawing surface. The sub-pixel resolution is
// (Width*2) x (Height*4). Each cell carries one foreground color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]palette.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.alloc()
	return c
}

func (c *Canvas) alloc() {
	c.Grid = make([][]rune, c.Height)
	c.Colors = make([][]palette.RGBA, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Colors[i] = make([]palette.RGBA, c.Width)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// Set lights the sub-pixel at (x, y) with the given color.
func (c *Canvas) Set(x, y int, col palette.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx := x / 2
	cy := y / 4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[cy][cx] = col
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Colors[i][j] = palette.RGBA{}
		}
	}
}

// DrawLine draws a colored line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col palette.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect fills the sub-pixel rectangle [x0,x1] x [y0,y1].
func (c *Canvas) FillRect(x0, y0, x1, y1 int, col palette.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y, col)
		}
	}
}

// String renders the canvas with per-cell lipgloss foreground colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.Height; y++ {
		if c.Width == 0 {
			if y < c.Height-1 {
				b.WriteByte('\n')
			}
			continue
		}
		runStart := 0
		runColor := c.Colors[y][0]
		for x := 1; x <= c.Width; x++ {
			if x < c.Width && c.Colors[y][x] == runColor {
				continue
			}
			seg := string(c.Grid[y][runStart:x])
			if runColor == (palette.RGBA{}) {
				b.WriteString(seg)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipglossColor(runColor)).Render(seg))
			}
			if x < c.Width {
				runStart = x
				runColor = c.Colors[y][x]
			}
		}
		if y < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func lipglossColor(c palette.RGBA) lipgloss.Color {
	n := c.NRGBA()
	const hex = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{n.R, n.G, n.B} {
		buf[1+i*2] = hex[v>>4]
		buf[2+i*2] = hex[v&0xf]
	}
	return lipgloss.Color(string(buf))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

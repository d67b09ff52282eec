package render

import (
	"math"
	"sort"

	"github.com/san-kum/sortviz/internal/palette"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects world space onto the canvas plane. Used by the canvas
// backend's 3-D view; the orbit is advanced a little every frame.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, RotX: 0.45, Zoom: 1.0}
}

func (c *Camera) Orbit(d float64) { c.RotY += d }

func (c *Camera) rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to sub-pixel screen coordinates.
// Returns x, y, depth and whether the point is in front of the camera.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, true
}

type edge struct {
	a, b  Vec3
	color palette.RGBA
}

// Wireframe is a one-frame batch of colored edges.
type Wireframe struct {
	edges []edge
}

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(a, b Vec3, c palette.RGBA) {
	w.edges = append(w.edges, edge{a, b, c})
}

// AddBox adds the twelve edges of an axis-aligned box spanning min..max.
func (w *Wireframe) AddBox(min, max Vec3, c palette.RGBA) {
	v := [8]Vec3{
		{min.X, min.Y, min.Z}, {max.X, min.Y, min.Z},
		{max.X, max.Y, min.Z}, {min.X, max.Y, min.Z},
		{min.X, min.Y, max.Z}, {max.X, min.Y, max.Z},
		{max.X, max.Y, max.Z}, {min.X, max.Y, max.Z},
	}
	idx := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range idx {
		w.AddEdge(v[e[0]], v[e[1]], c)
	}
}

func (w *Wireframe) Clear() { w.edges = w.edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          palette.RGBA
}

// Draw paints the wireframe onto the canvas back to front.
func (w *Wireframe) Draw(c *Canvas, cam *Camera) {
	sw, sh := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.edges))
	for _, e := range w.edges {
		x1, y1, d1, v1 := cam.Project(e.a, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.b, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.color})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
	}
}

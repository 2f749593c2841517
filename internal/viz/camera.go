package viz

import (
	"math"

	"github.com/san-kum/rigidsim/internal/vecmath"
)

type vec = vecmath.Vector3[float64]

// Camera orbits the origin and projects world points onto a canvas.
// Scale is world units per half of the shorter canvas side.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
	Scale      float64
	Center     vec
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Zoom: 1, Scale: 10}
}

func (c *Camera) Orbit(a float64) { c.RotY += a }
func (c *Camera) Tilt(a float64)  { c.RotX += a }
func (c *Camera) ZoomIn()         { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()        { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p vec) vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p[1], p[2] = p[1]*cx-p[2]*sx, p[1]*sx+p[2]*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p[0], p[2] = p[0]*cy+p[2]*sy, -p[0]*sy+p[2]*cy
	return p
}

// Project maps p to pixel coordinates on a sw x sh area. The bool is false
// when the point is behind the camera or off screen.
func (c *Camera) Project(p vec, sw, sh int) (int, int, bool) {
	rot := c.rotate(p.Sub(c.Center)).Scale(c.Zoom / c.Scale)
	if rot[2] >= c.Distance-0.1 {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot[2])
	half := float64(min(sw, sh)) / 2
	sx := int(math.Round(rot[0]*persp*half)) + sw/2
	sy := int(math.Round(-rot[1]*persp*half)) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Segment projects both ends and draws the line between them if either
// end is visible.
func (c *Camera) Segment(cv *Canvas, a, b vec) {
	sw, sh := cv.PixelSize()
	x1, y1, v1 := c.Project(a, sw, sh)
	x2, y2, v2 := c.Project(b, sw, sh)
	if v1 || v2 {
		cv.DrawLine(x1, y1, x2, y2)
	}
}

// Point projects p and sets its dot when visible.
func (c *Camera) Point(cv *Canvas, p vec) {
	sw, sh := cv.PixelSize()
	if x, y, ok := c.Project(p, sw, sh); ok {
		cv.Set(x, y)
	}
}

package halfedge3d

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// ScreenCanvas draws onto an ebiten image.
type ScreenCanvas struct {
	screen    *ebiten.Image
	antiAlias bool
}

func NewScreenCanvas(screen *ebiten.Image, antiAlias bool) *ScreenCanvas {
	return &ScreenCanvas{screen: screen, antiAlias: antiAlias}
}

func (c *ScreenCanvas) Size() (int, int) {
	b := c.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ScreenCanvas) FillPolygon(p Polygon, clr color.RGBA) {
	vertices, indices := appendPolygon(nil, nil, p, clr)
	if len(indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: c.antiAlias}
	c.screen.DrawTriangles(vertices, indices, whiteSub, op)
}

func (c *ScreenCanvas) StrokeLine(x0, y0, x1, y1, width float32, clr color.RGBA) {
	vector.StrokeLine(c.screen, x0, y0, x1, y1, width, clr, c.antiAlias)
}

// FillStenciled fills every polygon with the non-zero rule so overlaps
// are only coloured once. DrawTriangles takes 16-bit indices, so a large
// set is split into batches; those are drawn opaque into a mask which is
// then tinted onto the screen in one go.
func (c *ScreenCanvas) FillStenciled(polys []Polygon, clr color.RGBA) {
	batches := stencilBatches(polys, math.MaxUint16)
	switch len(batches) {
	case 0:
		return
	case 1:
		c.fillBatch(c.screen, batches[0], clr)
		return
	}

	w, h := c.Size()
	mask := ebiten.NewImage(w, h)
	defer mask.Deallocate()
	for _, batch := range batches {
		c.fillBatch(mask, batch, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(clr)
	c.screen.DrawImage(mask, op)
}

func (c *ScreenCanvas) fillBatch(dst *ebiten.Image, polys []Polygon, clr color.RGBA) {
	var vertices []ebiten.Vertex
	var indices []uint16
	for _, p := range polys {
		vertices, indices = appendPolygon(vertices, indices, p, clr)
	}
	if len(indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: c.antiAlias,
		FillRule:  ebiten.FillRuleNonZero,
	}
	dst.DrawTriangles(vertices, indices, whiteSub, op)
}

// stencilBatches groups polys so no group holds more than limit vertices.
// Polygons that cannot be filled, or that exceed limit on their own, are
// dropped.
func stencilBatches(polys []Polygon, limit int) [][]Polygon {
	var batches [][]Polygon
	var batch []Polygon
	count := 0
	for _, p := range polys {
		n := len(p.X)
		if n < 3 || n > limit {
			continue
		}
		if count+n > limit {
			batches = append(batches, batch)
			batch, count = nil, 0
		}
		batch = append(batch, p)
		count += n
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}

// appendPolygon fans a convex polygon into triangles.
func appendPolygon(vertices []ebiten.Vertex, indices []uint16, p Polygon, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	if len(p.X) < 3 {
		return vertices, indices
	}

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	base := uint16(len(vertices))
	for i := range p.X {
		vertices = append(vertices, ebiten.Vertex{
			DstX:   p.X[i],
			DstY:   p.Y[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(p.X); i++ {
		indices = append(indices, base, base+uint16(i-1), base+uint16(i))
	}
	return vertices, indices
}

package halfedge3d

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is a convex screen-space polygon in pixels.
type Polygon struct {
	X, Y []float32
}

// Canvas receives the screen-space output of a Renderer.
type Canvas interface {
	Size() (width, height int)
	FillPolygon(p Polygon, clr color.RGBA)
	StrokeLine(x0, y0, x1, y1, width float32, clr color.RGBA)
	// FillStenciled fills the union of polys, so pixels covered by several
	// polygons are only coloured once however the implementation batches
	// its draw calls.
	FillStenciled(polys []Polygon, clr color.RGBA)
}

type RenderOptions struct {
	CullBackFaces bool

	Outline      bool
	EdgeWidth    float32
	OutlineColor color.RGBA

	Shadow      bool
	ShadowPlane float64
	ShadowColor color.RGBA
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		CullBackFaces: true,
		Outline:       true,
		EdgeWidth:     2,
		OutlineColor:  color.RGBA{A: 255},
		Shadow:        true,
		ShadowPlane:   -2,
		ShadowColor:   color.RGBA{A: 160},
	}
}

// Renderer draws a Scene onto a Canvas. Each frame fills the shadow
// receivers, lays the shadow decal over them, fills every other model far
// to near and finally strokes silhouette edges.
type Renderer struct {
	Options RenderOptions
}

func NewRenderer(opts RenderOptions) *Renderer {
	return &Renderer{Options: opts}
}

// frame is the per-frame state shared by the passes.
type frame struct {
	vp            mgl64.Mat4
	eye           mgl64.Vec3
	light         Light
	width, height int
}

type shadedFace struct {
	poly  Polygon
	depth float64
	clr   color.RGBA
}

func (r *Renderer) Render(c Canvas, s *Scene) {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}
	cam := s.Camera()
	f := &frame{
		vp:     ViewProjection(cam),
		eye:    cam.Transform().Position(),
		light:  s.Light,
		width:  w,
		height: h,
	}

	models := s.Models()
	var receivers, others []*Model
	for _, m := range models {
		if r.Options.Shadow && m.ReceivesShadow {
			receivers = append(receivers, m)
		} else {
			others = append(others, m)
		}
	}

	r.fillModels(c, f, receivers)
	if r.Options.Shadow {
		r.drawShadows(c, f, models)
	}
	r.fillModels(c, f, others)

	if r.Options.Outline {
		for _, m := range models {
			if m.Outline {
				r.drawOutline(c, f, m)
			}
		}
	}
}

// fillModels draws the faces of models as one group, farthest first.
func (r *Renderer) fillModels(c Canvas, f *frame, models []*Model) {
	var faces []shadedFace
	for _, m := range models {
		faces = r.appendFaces(faces, f, m)
	}
	sortFacesByDistance(faces)
	for _, sf := range faces {
		c.FillPolygon(sf.poly, sf.clr)
	}
}

// sortFacesByDistance puts the faces farther away at the start of the slice.
func sortFacesByDistance(faces []shadedFace) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})
}

func (r *Renderer) appendFaces(out []shadedFace, f *frame, m *Model) []shadedFace {
	world := m.Transform.WorldMatrix()
	mvp := f.vp.Mul4(world)
	normalMatrix := world.Mat3().Inv().Transpose()
	b := m.Buffers

	for t := 0; t+2 < len(b.Triangles); t += 3 {
		var worldPts [3]mgl64.Vec3
		clipPts := make([]mgl64.Vec4, 3)
		var n mgl64.Vec3
		for k := 0; k < 3; k++ {
			i := int(b.Triangles[t+k])
			p := vec3to64(b.position(i)).Vec4(1)
			worldPts[k] = world.Mul4x1(p).Vec3()
			clipPts[k] = mvp.Mul4x1(p)
			n = n.Add(normalMatrix.Mul3x1(vec3to64(b.normal(i))))
		}

		poly := clipNear(clipPts)
		if len(poly) < 3 {
			continue
		}
		pts := make([]mgl64.Vec2, len(poly))
		for i, p := range poly {
			pts[i] = ndc(p)
		}
		if r.Options.CullBackFaces && signedArea(pts) <= 0 {
			continue
		}

		centroid := worldPts[0].Add(worldPts[1]).Add(worldPts[2]).Mul(1.0 / 3)
		if n.Len() == 0 {
			n = worldPts[1].Sub(worldPts[0]).Cross(worldPts[2].Sub(worldPts[1]))
		}

		var clr color.RGBA
		switch m.Shading {
		case ShadingUnlit:
			clr = unlitColor(m.Material, f.light)
		default:
			clr = litColor(m.Material, f.light, n, f.eye.Sub(centroid))
		}

		out = append(out, shadedFace{
			poly:  f.screenPolygon(pts),
			depth: centroid.Sub(f.eye).Len(),
			clr:   clr,
		})
	}
	return out
}

func (f *frame) screenPolygon(pts []mgl64.Vec2) Polygon {
	p := Polygon{X: make([]float32, len(pts)), Y: make([]float32, len(pts))}
	for i, pt := range pts {
		p.X[i], p.Y[i] = toScreen(pt, f.width, f.height)
	}
	return p
}

// drawShadows projects the light-facing triangles of every shadow caster
// along the light onto the plane y = ShadowPlane and fills them as one
// stenciled decal. Nothing is drawn unless the light points downwards.
// Triangles with a corner below the plane cast no shadow.
func (r *Renderer) drawShadows(c Canvas, f *frame, models []*Model) {
	d := f.light.Direction
	if d[1] >= 0 {
		return
	}
	plane := r.Options.ShadowPlane

	var polys []Polygon
	for _, m := range models {
		if !m.CastsShadow {
			continue
		}
		world := m.Transform.WorldMatrix()
		b := m.Buffers
	triangles:
		for t := 0; t+2 < len(b.Triangles); t += 3 {
			var pts [3]mgl64.Vec3
			for k := 0; k < 3; k++ {
				p := vec3to64(b.position(int(b.Triangles[t+k])))
				pts[k] = world.Mul4x1(p.Vec4(1)).Vec3()
				if pts[k][1] < plane {
					continue triangles
				}
			}
			n := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0]))
			if n.Dot(d) >= 0 {
				continue
			}

			clipPts := make([]mgl64.Vec4, 3)
			for k, p := range pts {
				q := p.Add(d.Mul((plane - p[1]) / d[1]))
				q[1] = plane
				clipPts[k] = f.vp.Mul4x1(q.Vec4(1))
			}
			poly := clipNear(clipPts)
			if len(poly) < 3 {
				continue
			}
			ndcPts := make([]mgl64.Vec2, len(poly))
			for i, p := range poly {
				ndcPts[i] = ndc(p)
			}
			polys = append(polys, f.screenPolygon(ndcPts))
		}
	}
	if len(polys) > 0 {
		c.FillStenciled(polys, r.Options.ShadowColor)
	}
}

func (r *Renderer) drawOutline(c Canvas, f *frame, m *Model) {
	mvp := f.vp.Mul4(m.Transform.WorldMatrix())
	b := m.Buffers
	clip := make([]mgl64.Vec4, b.VertexCount())
	for i := range clip {
		clip[i] = mvp.Mul4x1(vec3to64(b.position(i)).Vec4(1))
	}

	for _, e := range silhouetteEdges(b.Adjacency, clip) {
		p0, p1, ok := clipSegmentNear(clip[e[0]], clip[e[1]])
		if !ok {
			continue
		}
		x0, y0 := toScreen(ndc(p0), f.width, f.height)
		x1, y1 := toScreen(ndc(p1), f.width, f.height)
		c.StrokeLine(x0, y0, x1, y1, r.Options.EdgeWidth, r.Options.OutlineColor)
	}
}

// silhouetteEdges reads a triangles-with-adjacency index list six entries
// at a time and returns the edges of front-facing triangles whose
// neighbour faces away. Slot i (even) is the edge from a[i] to a[i+2] and
// its neighbour is the triangle a[i], a[i+1], a[i+2]. A boundary edge's
// neighbour has zero area, so boundary edges of front faces are always
// returned. Faces with a corner behind the near plane are skipped; a
// neighbour with its outlier behind the near plane counts as facing away.
func silhouetteEdges(adjacency []uint32, clip []mgl64.Vec4) [][2]int {
	var edges [][2]int
	for t := 0; t+5 < len(adjacency); t += 6 {
		a := adjacency[t : t+6]
		own, ok := projectedArea(clip, int(a[0]), int(a[2]), int(a[4]))
		if !ok || own <= 0 {
			continue
		}
		for i := 0; i < 6; i += 2 {
			from, outlier, to := int(a[i]), int(a[i+1]), int(a[(i+2)%6])
			neighbour, ok := projectedArea(clip, from, outlier, to)
			if ok && neighbour > 0 {
				continue
			}
			edges = append(edges, [2]int{from, to})
		}
	}
	return edges
}

func projectedArea(clip []mgl64.Vec4, i, j, k int) (float64, bool) {
	pts := make([]mgl64.Vec2, 3)
	for n, idx := range [3]int{i, j, k} {
		p := clip[idx]
		if nearDistance(p) < 0 || p[3] <= 0 {
			return 0, false
		}
		pts[n] = ndc(p)
	}
	return signedArea(pts), true
}

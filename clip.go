package halfedge3d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// nearDistance is the signed distance of a clip-space point from the near
// plane; points with z + w >= 0 are in front of it.
func nearDistance(p mgl64.Vec4) float64 {
	return p[2] + p[3]
}

// clipNear clips a convex clip-space polygon against the near plane and
// returns what is left in front of it, keeping the winding.
func clipNear(poly []mgl64.Vec4) []mgl64.Vec4 {
	if len(poly) == 0 {
		return nil
	}
	out := make([]mgl64.Vec4, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevD := nearDistance(prev)
	for _, cur := range poly {
		curD := nearDistance(cur)
		if (prevD >= 0) != (curD >= 0) {
			out = append(out, lerp4(prev, cur, prevD/(prevD-curD)))
		}
		if curD >= 0 {
			out = append(out, cur)
		}
		prev, prevD = cur, curD
	}
	return out
}

// clipSegmentNear clips the segment a-b against the near plane. ok is
// false when nothing of it is in front.
func clipSegmentNear(a, b mgl64.Vec4) (mgl64.Vec4, mgl64.Vec4, bool) {
	da, db := nearDistance(a), nearDistance(b)
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = lerp4(a, b, da/(da-db))
	case db < 0:
		b = lerp4(a, b, da/(da-db))
	}
	return a, b, true
}

func lerp4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// ndc divides by w. Callers only pass points that survived near clipping.
func ndc(p mgl64.Vec4) mgl64.Vec2 {
	if p[3] == 0 {
		return mgl64.Vec2{p[0], p[1]}
	}
	return mgl64.Vec2{p[0] / p[3], p[1] / p[3]}
}

// signedArea is twice the signed area of a polygon; positive means
// counter-clockwise in normalised device coordinates, which is front
// facing.
func signedArea(pts []mgl64.Vec2) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return a
}

// toScreen maps normalised device coordinates to pixels with y down.
func toScreen(p mgl64.Vec2, width, height int) (float32, float32) {
	x := (p[0] + 1) / 2 * float64(width)
	y := (1 - p[1]) / 2 * float64(height)
	return float32(x), float32(y)
}

func vec3to64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

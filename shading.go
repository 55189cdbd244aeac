package halfedge3d

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shading selects how a model's faces are coloured.
type Shading int

const (
	// ShadingLit is Blinn-Phong against the scene light.
	ShadingLit Shading = iota
	// ShadingUnlit is material ambient times world ambient.
	ShadingUnlit
)

func (s Shading) String() string {
	switch s {
	case ShadingLit:
		return "lit"
	case ShadingUnlit:
		return "unlit"
	}
	return "unknown"
}

func ParseShading(s string) (Shading, error) {
	switch s {
	case "", "lit":
		return ShadingLit, nil
	case "unlit":
		return ShadingUnlit, nil
	}
	return ShadingLit, fmt.Errorf("unknown shading %q", s)
}

// Light is a single directional light plus a flat ambient term. Direction
// is the way the light travels, so a light from above points down.
type Light struct {
	Direction mgl64.Vec3
	Color     mgl64.Vec3
	Ambient   mgl64.Vec3
}

// litColor shades a surface with normal n seen along toEye.
func litColor(mat *Material, light Light, n, toEye mgl64.Vec3) color.RGBA {
	c := mulVec(vec3to64(mat.Ambient), light.Ambient)

	if n.Len() == 0 || light.Direction.Len() == 0 {
		return toRGBA(c)
	}
	n = n.Normalize()
	toLight := light.Direction.Mul(-1).Normalize()

	diffuse := n.Dot(toLight)
	if diffuse <= 0 {
		return toRGBA(c)
	}
	c = c.Add(mulVec(vec3to64(mat.Diffuse), light.Color).Mul(diffuse))

	if mat.SpecularExponent > 0 && toEye.Len() > 0 {
		half := toLight.Add(toEye.Normalize())
		if half.Len() > 0 {
			s := math.Max(n.Dot(half.Normalize()), 0)
			s = math.Pow(s, float64(mat.SpecularExponent))
			c = c.Add(mulVec(vec3to64(mat.Specular), light.Color).Mul(s))
		}
	}
	return toRGBA(c)
}

func unlitColor(mat *Material, light Light) color.RGBA {
	return toRGBA(mulVec(vec3to64(mat.Ambient), light.Ambient))
}

func toRGBA(c mgl64.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(int(math.Round(c[0]*255)), 0, 255)),
		G: uint8(clamp(int(math.Round(c[1]*255)), 0, 255)),
		B: uint8(clamp(int(math.Round(c[2]*255)), 0, 255)),
		A: 255,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

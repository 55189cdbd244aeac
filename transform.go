package halfedge3d

import "github.com/go-gl/mathgl/mgl64"

// Transform places something in the world: scale, then rotate, then
// translate.
type Transform struct {
	position mgl64.Vec3
	rotation mgl64.Quat
	scale    mgl64.Vec3
}

func NewTransform() *Transform {
	return &Transform{
		rotation: mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
	}
}

func (t *Transform) Position() mgl64.Vec3 { return t.position }
func (t *Transform) Rotation() mgl64.Quat { return t.rotation }
func (t *Transform) Scale() mgl64.Vec3    { return t.scale }

func (t *Transform) SetPosition(p mgl64.Vec3) { t.position = p }

// SetRotation stores q normalised; a zero quaternion resets to identity.
func (t *Transform) SetRotation(q mgl64.Quat) {
	if q.Len() == 0 {
		t.rotation = mgl64.QuatIdent()
		return
	}
	t.rotation = q.Normalize()
}

func (t *Transform) SetScale(s mgl64.Vec3) { t.scale = s }

// SetEuler sets the rotation from angles in radians about X, then Y, then Z.
func (t *Transform) SetEuler(x, y, z float64) {
	t.SetRotation(mgl64.AnglesToQuat(z, y, x, mgl64.ZYX))
}

// WorldMatrix takes points from local to world space.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.position[0], t.position[1], t.position[2])
	scale := mgl64.Scale3D(t.scale[0], t.scale[1], t.scale[2])
	return translate.Mul4(t.rotation.Mat4()).Mul4(scale)
}

// InverseWorldMatrix takes points from world to local space, which is the
// view matrix when the transform belongs to a camera. A zero scale
// component is treated as 1.
func (t *Transform) InverseWorldMatrix() mgl64.Mat4 {
	inv := mgl64.Vec3{1, 1, 1}
	for i, s := range t.scale {
		if s != 0 {
			inv[i] = 1 / s
		}
	}
	scale := mgl64.Scale3D(inv[0], inv[1], inv[2])
	translate := mgl64.Translate3D(-t.position[0], -t.position[1], -t.position[2])
	return scale.Mul4(t.rotation.Inverse().Mat4()).Mul4(translate)
}

// Clone returns an independent copy.
func (t *Transform) Clone() *Transform {
	c := *t
	return &c
}

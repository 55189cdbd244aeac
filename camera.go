package halfedge3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera supplies the view and projection for a frame.
type Camera interface {
	// SetResolution updates the aspect ratio for a viewport in pixels.
	SetResolution(width, height int)
	ViewMatrix() mgl64.Mat4
	ProjectionMatrix() mgl64.Mat4
	Transform() *Transform
}

// ViewProjection returns projection * view for c.
func ViewProjection(c Camera) mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

var worldUp = mgl64.Vec3{0, 1, 0}

// LookAtPerspectiveCamera is a perspective camera that always faces its
// target. Its rotation is derived from the position each time the view is
// requested.
type LookAtPerspectiveCamera struct {
	transform *Transform
	target    mgl64.Vec3

	fov, aspect, near, far float64
}

// NewLookAtPerspectiveCamera takes the vertical field of view in radians.
func NewLookAtPerspectiveCamera(fov, aspect, near, far float64, target mgl64.Vec3) *LookAtPerspectiveCamera {
	return &LookAtPerspectiveCamera{
		transform: NewTransform(),
		target:    target,
		fov:       fov,
		aspect:    aspect,
		near:      near,
		far:       far,
	}
}

func (c *LookAtPerspectiveCamera) Transform() *Transform { return c.transform }

func (c *LookAtPerspectiveCamera) Target() mgl64.Vec3 { return c.target }

func (c *LookAtPerspectiveCamera) SetTarget(target mgl64.Vec3) { c.target = target }

func (c *LookAtPerspectiveCamera) SetFOV(fov float64) { c.fov = fov }

func (c *LookAtPerspectiveCamera) SetResolution(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
}

func (c *LookAtPerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(c.fov, c.aspect, c.near, c.far)
}

// ViewMatrix points -Z at the target with +Y kept as close to up as the
// view direction allows.
func (c *LookAtPerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	rotation, ok := LookRotation(c.transform.Position(), c.target)
	if ok {
		c.transform.SetRotation(rotation)
	}
	return c.transform.InverseWorldMatrix()
}

// LookRotation returns the rotation that points -Z from eye at target with
// +Y as close to world up as possible. ok is false when eye and target
// coincide.
func LookRotation(eye, target mgl64.Vec3) (mgl64.Quat, bool) {
	forward := target.Sub(eye)
	if forward.Len() == 0 {
		return mgl64.QuatIdent(), false
	}
	up := worldUp
	if math.Abs(forward.Normalize().Dot(up)) > 0.9999 {
		up = mgl64.Vec3{0, 0, -1}
	}
	view := mgl64.LookAtV(eye, target, up)
	return mgl64.Mat4ToQuat(view.Mat3().Transpose().Mat4()), true
}

// OrthographicCamera looks down its transform's -Z axis. orthoHeight is
// half the visible height in world units; the width follows the viewport.
type OrthographicCamera struct {
	transform   *Transform
	orthoHeight float64
	near, far   float64
	aspect      float64
}

func NewOrthographicCamera(orthoHeight, near, far float64) *OrthographicCamera {
	return &OrthographicCamera{
		transform:   NewTransform(),
		orthoHeight: orthoHeight,
		near:        near,
		far:         far,
		aspect:      1,
	}
}

func (c *OrthographicCamera) Transform() *Transform { return c.transform }

func (c *OrthographicCamera) SetResolution(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
}

func (c *OrthographicCamera) ProjectionMatrix() mgl64.Mat4 {
	w := c.orthoHeight * c.aspect
	return mgl64.Ortho(-w, w, -c.orthoHeight, c.orthoHeight, c.near, c.far)
}

func (c *OrthographicCamera) ViewMatrix() mgl64.Mat4 {
	return c.transform.InverseWorldMatrix()
}

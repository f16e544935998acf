package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's placement relative to its parent.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromTranslation returns an unrotated, unscaled transform at t.
func FromTranslation(t mgl32.Vec3) Transform {
	tr := IdentityTransform()
	tr.Translation = t
	return tr
}

// WithScale returns a copy of t with the given uniform scale.
func (t Transform) WithScale(s float32) Transform {
	t.Scale = mgl32.Vec3{s, s, s}
	return t
}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.Elem()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.Elem()))
}

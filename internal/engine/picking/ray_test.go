package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntersectSlab(t *testing.T) {
	plane := NewAABB(mgl32.Vec3{-5, 0, -5}, mgl32.Vec3{5, 0, 5})
	shifted := NewAABB(mgl32.Vec3{6, 0, -4}, mgl32.Vec3{14, 0, 4})

	tests := []struct {
		name  string
		box   *AABB // nil means plane
		ray   Ray
		hit   bool
		wantT float32
	}{
		{
			name:  "straight down",
			ray:   Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			hit:   true,
			wantT: 10,
		},
		{
			name: "straight up",
			ray:  Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, 1, 0}},
			hit:  false,
		},
		{
			name: "parallel above plane",
			ray:  Ray{Origin: mgl32.Vec3{-20, 3, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			hit:  false,
		},
		{
			name: "down outside extents",
			ray:  Ray{Origin: mgl32.Vec3{6, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			hit:  false,
		},
		{
			name:  "origin on plane pointing down",
			ray:   Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			hit:   true,
			wantT: 0,
		},
		{
			name:  "lying in the plane",
			ray:   Ray{Origin: mgl32.Vec3{-20, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}},
			hit:   true,
			wantT: 15,
		},
		{
			name:  "diagonal",
			ray:   Ray{Origin: mgl32.Vec3{0, 4, -3}, Direction: mgl32.Vec3{0, -4, 3}.Normalize()},
			hit:   true,
			wantT: 5,
		},
		{
			name:  "offset box inside",
			box:   &shifted,
			ray:   Ray{Origin: mgl32.Vec3{13.5, 10, 1}, Direction: mgl32.Vec3{0, -1, 0}},
			hit:   true,
			wantT: 10,
		},
		{
			name: "offset box past edge",
			box:  &shifted,
			ray:  Ray{Origin: mgl32.Vec3{15, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			hit:  false,
		},
		{
			name: "offset box at origin",
			box:  &shifted,
			ray:  Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}},
			hit:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := plane
			if tt.box != nil {
				box = *tt.box
			}
			got, hit := tt.ray.IntersectSlab(box)
			if hit != tt.hit {
				t.Fatalf("IntersectSlab() hit = %v, want %v", hit, tt.hit)
			}
			if hit && !mgl32.FloatEqualThreshold(got, tt.wantT, 1e-4) {
				t.Errorf("IntersectSlab() t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestNewAABBSortsCorners(t *testing.T) {
	box := NewAABB(mgl32.Vec3{3, -1, 2}, mgl32.Vec3{-3, 1, -2})
	if box.Min != (mgl32.Vec3{-3, -1, -2}) || box.Max != (mgl32.Vec3{3, 1, 2}) {
		t.Errorf("NewAABB() = %+v, want sorted corners", box)
	}
}

func TestScreenToRay(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	inv := proj.Mul4(view).Inv()

	ray := ScreenToRay(400, 400, 800, 800, inv)

	want := mgl32.Vec3{0, -1, 0}
	if !ray.Direction.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("center ray direction = %v, want %v", ray.Direction, want)
	}
	if !mgl32.FloatEqualThreshold(ray.Origin.Y(), 9.9, 1e-3) {
		t.Errorf("center ray origin Y = %v, want near plane at 9.9", ray.Origin.Y())
	}

	p := ray.At(9.9)
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, 1e-3) {
		t.Errorf("ray.At(9.9) = %v, want origin", p)
	}
}

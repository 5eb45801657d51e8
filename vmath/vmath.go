// Package vmath provides the small numeric value types used across the
// toolkit: vectors, boxes, a 3x3 matrix, and closed number ranges.
//
// All types are plain values and safe to copy.
package vmath

// V2i represents a 2D integer vector.
type V2i struct {
	X, Y int
}

// V2f represents a 2D float vector.
type V2f struct {
	X, Y float32
}

// V3f represents a 3D float vector.
type V3f struct {
	X, Y, Z float32
}

// V2b holds a pair of per-axis flags, used for mirroring.
type V2b struct {
	X, Y bool
}

// Add returns a + b.
func (a V2i) Add(b V2i) V2i { return V2i{a.X + b.X, a.Y + b.Y} }

// Sub returns a - b.
func (a V2i) Sub(b V2i) V2i { return V2i{a.X - b.X, a.Y - b.Y} }

// Mul returns the component-wise product.
func (a V2i) Mul(b V2i) V2i { return V2i{a.X * b.X, a.Y * b.Y} }

// IsZero reports whether either component is zero or negative, i.e. the
// vector describes an empty size.
func (a V2i) IsZero() bool { return a.X <= 0 || a.Y <= 0 }

// Add returns a + b.
func (a V2f) Add(b V2f) V2f { return V2f{a.X + b.X, a.Y + b.Y} }

// Sub returns a - b.
func (a V2f) Sub(b V2f) V2f { return V2f{a.X - b.X, a.Y - b.Y} }

// Mul returns the component-wise product.
func (a V2f) Mul(b V2f) V2f { return V2f{a.X * b.X, a.Y * b.Y} }

// Scale returns a scaled by s.
func (a V2f) Scale(s float32) V2f { return V2f{a.X * s, a.Y * s} }

// Add returns a + b.
func (a V3f) Add(b V3f) V3f { return V3f{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a - b.
func (a V3f) Sub(b V3f) V3f { return V3f{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Mul returns the component-wise product.
func (a V3f) Mul(b V3f) V3f { return V3f{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

// Scale returns a scaled by s.
func (a V3f) Scale(s float32) V3f { return V3f{a.X * s, a.Y * s, a.Z * s} }

// Box2i represents an axis-aligned 2D integer box.
// Both corners are inclusive.
type Box2i struct {
	Min, Max V2i
}

// NewBox2i creates a box from a position and a size.
func NewBox2i(x, y, w, h int) Box2i {
	return Box2i{Min: V2i{x, y}, Max: V2i{x + w - 1, y + h - 1}}
}

// Width returns the width of the box.
func (b Box2i) Width() int {
	return b.Max.X - b.Min.X + 1
}

// Height returns the height of the box.
func (b Box2i) Height() int {
	return b.Max.Y - b.Min.Y + 1
}

// Size returns the width and height as a vector.
func (b Box2i) Size() V2i {
	return V2i{b.Width(), b.Height()}
}

// IsEmpty returns true if the box has no area.
func (b Box2i) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// Contains returns true if the point (x, y) is inside the box.
func (b Box2i) Contains(x, y int) bool {
	return x >= b.Min.X && x <= b.Max.X && y >= b.Min.Y && y <= b.Max.Y
}

// Area returns the area of the box.
func (b Box2i) Area() int64 {
	if b.IsEmpty() {
		return 0
	}
	return int64(b.Width()) * int64(b.Height())
}

// Intersect returns the overlap of the two boxes and whether it is non-empty.
func (b Box2i) Intersect(o Box2i) (Box2i, bool) {
	out := Box2i{
		Min: V2i{max(b.Min.X, o.Min.X), max(b.Min.Y, o.Min.Y)},
		Max: V2i{min(b.Max.X, o.Max.X), min(b.Max.Y, o.Max.Y)},
	}
	return out, !out.IsEmpty()
}

// Union returns the smallest box containing both boxes.
func (b Box2i) Union(o Box2i) Box2i {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box2i{
		Min: V2i{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y)},
		Max: V2i{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y)},
	}
}

// Expand returns the box grown to include the point (x, y).
func (b Box2i) Expand(x, y int) Box2i {
	if b.IsEmpty() {
		return Box2i{Min: V2i{x, y}, Max: V2i{x, y}}
	}
	return Box2i{
		Min: V2i{min(b.Min.X, x), min(b.Min.Y, y)},
		Max: V2i{max(b.Max.X, x), max(b.Max.Y, y)},
	}
}

// Box2f represents an axis-aligned 2D float box.
type Box2f struct {
	Min, Max V2f
}

// Width returns the width of the box.
func (b Box2f) Width() float32 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the box.
func (b Box2f) Height() float32 {
	return b.Max.Y - b.Min.Y
}

// IsEmpty returns true if the box has no area.
func (b Box2f) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// Contains returns true if the point (x, y) is inside the box.
func (b Box2f) Contains(x, y float32) bool {
	return x >= b.Min.X && x <= b.Max.X && y >= b.Min.Y && y <= b.Max.Y
}

// M33f represents a 3x3 float matrix stored in row-major order.
// Points are treated as row vectors, so translation lives in the last row.
type M33f [9]float32

// Identity33 returns the 3x3 identity matrix.
func Identity33() M33f {
	return M33f{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate33 returns a translation matrix.
func Translate33(v V2f) M33f {
	return M33f{
		1, 0, 0,
		0, 1, 0,
		v.X, v.Y, 1,
	}
}

// Scale33 returns a scale matrix.
func Scale33(v V2f) M33f {
	return M33f{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, 1,
	}
}

// Mul returns m * o.
func (m M33f) Mul(o M33f) M33f {
	var out M33f
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[r*3+k] * o[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

// Transform applies m to the point v.
func (m M33f) Transform(v V2f) V2f {
	x := v.X*m[0] + v.Y*m[3] + m[6]
	y := v.X*m[1] + v.Y*m[4] + m[7]
	w := v.X*m[2] + v.Y*m[5] + m[8]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return V2f{x, y}
}

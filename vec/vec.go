// Package vec provides the 2D vector primitive shared by every layer of the
// collision pipeline, built on gonum's r2 package instead of hand-rolled
// float64 pair arithmetic.
package vec

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is an immutable 2D value. Two Vecs are never mutated in place; every
// operation returns a new value.
type Vec struct {
	r r2.Vec
}

// New builds a Vec from its components.
func New(x, y float64) Vec {
	return Vec{r: r2.Vec{X: x, Y: y}}
}

// X returns the horizontal component.
func (v Vec) X() float64 { return v.r.X }

// Y returns the vertical component.
func (v Vec) Y() float64 { return v.r.Y }

// Add returns v + other.
func (v Vec) Add(other Vec) Vec {
	return Vec{r: r2.Add(v.r, other.r)}
}

// Sub returns v - other.
func (v Vec) Sub(other Vec) Vec {
	return Vec{r: r2.Sub(v.r, other.r)}
}

// Scale returns v scaled by f.
func (v Vec) Scale(f float64) Vec {
	return Vec{r: r2.Scale(f, v.r)}
}

// Dot returns the dot product of v and other.
func (v Vec) Dot(other Vec) float64 {
	return v.r.X*other.r.X + v.r.Y*other.r.Y
}

// Cross returns the 2D scalar cross product (z-component of the 3D cross
// product of the two vectors lifted into the xy-plane). Its sign is the
// orientation predicate the exact intersection test relies on.
func Cross(a, b Vec) float64 {
	return a.r.X*b.r.Y - a.r.Y*b.r.X
}

// Norm returns |v|.
func (v Vec) Norm() float64 {
	return math.Hypot(v.r.X, v.r.Y)
}

// Norm2 returns |v|^2, avoiding the sqrt when only a comparison is needed.
func (v Vec) Norm2() float64 {
	return v.r.X*v.r.X + v.r.Y*v.r.Y
}

// Zero is the additive identity.
var Zero = Vec{}

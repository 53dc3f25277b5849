package geom

import "fmt"

// Coord is an integer position of a unit cube.
type Coord struct {
	X, Y, Z int
}

// C is shorthand for Coord{x, y, z}.
func C(x, y, z int) Coord { return Coord{X: x, Y: y, Z: z} }

// Get returns the component along a. It panics on an invalid axis.
func (c Coord) Get(a Axis) int {
	switch a {
	case X:
		return c.X
	case Y:
		return c.Y
	case Z:
		return c.Z
	}
	panic(fmt.Sprintf("geom: invalid %v", a))
}

// With returns c with the component along a replaced by v.
func (c Coord) With(a Axis, v int) Coord {
	switch a {
	case X:
		c.X = v
	case Y:
		c.Y = v
	case Z:
		c.Z = v
	default:
		panic(fmt.Sprintf("geom: invalid %v", a))
	}
	return c
}

// Add returns the component-wise sum of c and d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y, c.Z + d.Z}
}

// Sub returns the component-wise difference c - d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{c.X - d.X, c.Y - d.Y, c.Z - d.Z}
}

// Along returns a vector of length n along a.
func Along(a Axis, n int) Coord {
	return Coord{}.With(a, n)
}

// DistSq returns the squared Euclidean distance between c and d.
func (c Coord) DistSq(d Coord) int {
	v := c.Sub(d)
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Volume returns X*Y*Z, the cell count of a box with these dimensions.
func (c Coord) Volume() int { return c.X * c.Y * c.Z }

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Rotate turns c a quarter turn about axis a through the origin. For the
// exchanged axes (p, q) of a:
//
//	new[p] = -sign * old[q]
//	new[q] =  sign * old[p]
//
// Four turns with the same sign are the identity. Rotate panics if a is not a
// cardinal axis or sign is not ±1; callers parse tokens with ParseAxis and
// ParseDirection first.
func Rotate(c Coord, a Axis, sign int) Coord {
	if !a.Valid() {
		panic(fmt.Sprintf("geom: rotate about invalid %v", a))
	}
	if sign != 1 && sign != -1 {
		panic(fmt.Sprintf("geom: rotate with invalid sign %d", sign))
	}
	p, q := a.Exchanged()
	oldP, oldQ := c.Get(p), c.Get(q)
	return c.With(p, -sign*oldQ).With(q, sign*oldP)
}

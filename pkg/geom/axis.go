// Package geom provides the integer geometry shared by pieces and boards:
// unit-cube coordinates, the three cardinal axes and quarter-turn rotations
// about them.
//
// Everything here is a value type. Rotations and translations return new
// values; nothing in this package holds state.
package geom

import (
	"strconv"
	"strings"

	"github.com/matzehuels/cubetris/pkg/errors"
)

// Axis identifies one of the three cardinal axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists the cardinal axes in x, y, z order.
var Axes = [3]Axis{X, Y, Z}

var axisNames = [3]string{"x", "y", "z"}

// Valid reports whether a is one of X, Y or Z.
func (a Axis) Valid() bool { return a >= X && a <= Z }

// String returns the lowercase axis name.
func (a Axis) String() string {
	if !a.Valid() {
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
	return axisNames[a]
}

// Exchanged returns the two axes a quarter turn about a swaps, in the cyclic
// order x→y→z→x: X exchanges (Y,Z), Y exchanges (Z,X), Z exchanges (X,Y).
func (a Axis) Exchanged() (p, q Axis) {
	return (a + 1) % 3, (a + 2) % 3
}

// ParseAxis parses an axis token ("x", "Y", ...). Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAxis, "invalid axis %q (must be x, y or z)", s)
}

// Direction is a rotation sense expressed as its sign.
type Direction int

const (
	// CounterClockwise is the positive rotation sense.
	CounterClockwise Direction = 1
	// Clockwise is the negative rotation sense.
	Clockwise Direction = -1
)

// Valid reports whether d is +1 or -1.
func (d Direction) Valid() bool { return d == CounterClockwise || d == Clockwise }

// Sign returns the direction as +1 or -1.
func (d Direction) Sign() int { return int(d) }

// String returns "ccw" or "cw".
func (d Direction) String() string {
	switch d {
	case CounterClockwise:
		return "ccw"
	case Clockwise:
		return "cw"
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}

// ParseDirection parses a rotation direction token. It accepts cw, ccw,
// clockwise, counter-clockwise, counterclockwise and the raw signs +1, 1 and
// -1, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ccw", "counter-clockwise", "counterclockwise", "+1", "1":
		return CounterClockwise, nil
	case "cw", "clockwise", "-1":
		return Clockwise, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDirection,
		"invalid rotation direction %q (must be cw, ccw, clockwise, counter-clockwise or ±1)", s)
}

// DirectionFromSign converts a raw ±1 sign into a Direction.
func DirectionFromSign(sign int) (Direction, error) {
	d := Direction(sign)
	if !d.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidDirection, "invalid rotation sign %d (must be +1 or -1)", sign)
	}
	return d, nil
}

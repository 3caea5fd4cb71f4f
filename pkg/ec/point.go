package ec

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecmath/internal/x9"
)

// Point is a point on an elliptic curve in affine coordinates, or the point
// at infinity when both coordinates are absent. Points are immutable: every
// operation returns a new Point and never modifies its receiver.
//
// There are exactly two implementations, FpPoint and F2mPoint, matching the
// two supported field kinds. Points of different kinds must not be combined.
type Point interface {
	// Curve returns the curve the point belongs to.
	Curve() Curve

	// X returns the affine x coordinate, or nil for the point at infinity.
	X() FieldElement

	// Y returns the affine y coordinate, or nil for the point at infinity.
	Y() FieldElement

	// IsInfinity reports whether the point is the additive identity.
	IsInfinity() bool

	// IsCompressed reports whether Encoded uses the compressed format.
	// The flag has no effect on arithmetic.
	IsCompressed() bool

	// Equal reports whether the other point has the same coordinates, or
	// both points are at infinity. The curve is not part of the comparison.
	Equal(other Point) bool

	// HashCode returns 0 for the point at infinity, otherwise the
	// exclusive-or of the coordinate hashes.
	HashCode() uint32

	Add(b Point) (Point, error)
	Subtract(b Point) (Point, error)
	Twice() (Point, error)

	// Multiply returns k·P for a non-negative scalar k. The scalar is not
	// reduced by the curve order; callers must range-reduce if required.
	// The computation is not constant time in the bits of k.
	Multiply(k *big.Int) (Point, error)

	// Encoded returns the X9.62 octet-string encoding of the point.
	Encoded() ([]byte, error)
}

func pointsEqual(a, b Point) bool {
	if a.IsInfinity() || b.IsInfinity() {
		return a.IsInfinity() && b.IsInfinity()
	}
	return a.X().Equal(b.X()) && a.Y().Equal(b.Y())
}

func pointHashCode(p Point) uint32 {
	if p.IsInfinity() {
		return 0
	}
	return p.X().HashCode() ^ p.Y().HashCode()
}

// FpPoint is a point on a prime-field curve.
type FpPoint struct {
	curve      *FpCurve
	x, y       FieldElement
	compressed bool
}

// NewFpPoint creates a point on a prime-field curve. Passing nil for both
// coordinates yields the point at infinity. The point is not checked against
// the curve equation.
func NewFpPoint(curve *FpCurve, x, y FieldElement, compressed bool) *FpPoint {
	return &FpPoint{curve: curve, x: x, y: y, compressed: compressed}
}

func (p *FpPoint) Curve() Curve { return p.curve }

func (p *FpPoint) X() FieldElement { return p.x }

func (p *FpPoint) Y() FieldElement { return p.y }

func (p *FpPoint) IsInfinity() bool { return p.x == nil && p.y == nil }

func (p *FpPoint) IsCompressed() bool { return p.compressed }

func (p *FpPoint) Equal(other Point) bool { return pointsEqual(p, other) }

func (p *FpPoint) HashCode() uint32 { return pointHashCode(p) }

// Add returns the sum of two distinct finite points. It performs no
// special-casing: callers must not pass the point at infinity, the receiver
// itself (use Twice), or the receiver's inverse — the slope division fails
// with ErrDivByZero for the latter two.
func (p *FpPoint) Add(b Point) (Point, error) {
	o, ok := b.(*FpPoint)
	if !ok {
		panic("ec: mixed point types")
	}
	gamma, err := o.y.Subtract(p.y).Divide(o.x.Subtract(p.x))
	if err != nil {
		return nil, fmt.Errorf("ec: adding points with equal x: %w", err)
	}
	x3 := gamma.Square().Subtract(p.x).Subtract(o.x)
	y3 := gamma.Multiply(p.x.Subtract(x3)).Subtract(p.y)
	return &FpPoint{curve: p.curve, x: x3, y: y3}, nil
}

// Twice returns 2P. Doubling a point whose y coordinate is zero (a
// 2-torsion point) fails with ErrDivByZero.
func (p *FpPoint) Twice() (Point, error) {
	two := p.curve.FromBigInt(big.NewInt(2))
	three := p.curve.FromBigInt(big.NewInt(3))
	gamma, err := p.x.Square().Multiply(three).Add(p.curve.a).Divide(p.y.Multiply(two))
	if err != nil {
		return nil, fmt.Errorf("ec: doubling a 2-torsion point: %w", err)
	}
	x3 := gamma.Square().Subtract(p.x.Multiply(two))
	y3 := gamma.Multiply(p.x.Subtract(x3)).Subtract(p.y)
	return &FpPoint{curve: p.curve, x: x3, y: y3}, nil
}

// Subtract returns P - b, computed as P + (-b).
func (p *FpPoint) Subtract(b Point) (Point, error) {
	o, ok := b.(*FpPoint)
	if !ok {
		panic("ec: mixed point types")
	}
	return p.Add(&FpPoint{curve: p.curve, x: o.x, y: o.y.Negate()})
}

// twiceGuarded is Twice with the identity cases handled: the point at
// infinity and 2-torsion points (y = 0) double to infinity. For all other
// inputs it matches Twice exactly.
func (p *FpPoint) twiceGuarded() *FpPoint {
	if p.IsInfinity() || p.y.IsZero() {
		return &FpPoint{curve: p.curve}
	}
	r, _ := p.Twice()
	return r.(*FpPoint)
}

// addGuarded is Add with the identity, doubling and inverse cases handled.
// For all other inputs it matches Add exactly.
func (p *FpPoint) addGuarded(o *FpPoint) *FpPoint {
	if p.IsInfinity() {
		return o
	}
	if o.IsInfinity() {
		return p
	}
	if p.x.Equal(o.x) {
		if p.y.Equal(o.y) {
			return p.twiceGuarded()
		}
		return &FpPoint{curve: p.curve}
	}
	r, _ := p.Add(o)
	return r.(*FpPoint)
}

// Multiply returns k·P using on-the-fly signed-digit recoding: each step
// compares bit i of 3k against bit i of k, yielding a digit in {-1, 0, +1}
// with no two consecutive non-zero digits. This keeps the number of point
// additions near the NAF minimum without precomputing a digit array.
//
// Unlike Add and Twice, Multiply tolerates intermediate identity and
// 2-torsion values, so k·P is defined for every k ≥ 0, including k equal to
// the order of P.
func (p *FpPoint) Multiply(k *big.Int) (Point, error) {
	if k.Sign() < 0 {
		return nil, fmt.Errorf("ec: scalar must be non-negative")
	}
	if k.Sign() == 0 {
		return p.curve.Infinity(), nil
	}
	if p.IsInfinity() {
		return p, nil
	}

	neg := &FpPoint{curve: p.curve, x: p.x, y: p.y.Negate()}
	h := new(big.Int).Mul(k, big.NewInt(3))

	r := p
	for i := h.BitLen() - 2; i > 0; i-- {
		r = r.twiceGuarded()
		hBit, kBit := h.Bit(i) == 1, k.Bit(i) == 1
		if hBit && !kBit {
			r = r.addGuarded(p)
		} else if !hBit && kBit {
			r = r.addGuarded(neg)
		}
	}
	return r, nil
}

// Encoded returns the X9.62 encoding: 0x04 ‖ x ‖ y uncompressed, or
// 0x02/0x03 ‖ x compressed, where the tag's low bit is the parity of y.
// The point at infinity encodes as the single octet 0x00.
func (p *FpPoint) Encoded() ([]byte, error) {
	if p.IsInfinity() {
		return []byte{0x00}, nil
	}
	qLength := x9.ByteLength(p.x.FieldSize())

	if p.compressed {
		tag := byte(0x02)
		if p.y.TestBit(0) {
			tag = 0x03
		}
		xBytes, err := x9.IntegerToBytes(p.x.BigInt(), qLength)
		if err != nil {
			return nil, err
		}
		return append([]byte{tag}, xBytes...), nil
	}

	xBytes, err := x9.IntegerToBytes(p.x.BigInt(), qLength)
	if err != nil {
		return nil, err
	}
	yBytes, err := x9.IntegerToBytes(p.y.BigInt(), qLength)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+2*qLength)
	out = append(out, 0x04)
	out = append(out, xBytes...)
	return append(out, yBytes...), nil
}

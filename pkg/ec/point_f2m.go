package ec

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecmath/internal/x9"
)

// F2mPoint is a point on a binary-field curve.
type F2mPoint struct {
	curve      *F2mCurve
	x, y       FieldElement
	compressed bool
}

// NewF2mPoint creates a finite point on a binary-field curve. The
// coordinates must belong to the same field as each other and as the curve
// coefficient a; violations return ErrFieldMismatch. Pass nil for both
// coordinates to obtain the point at infinity.
func NewF2mPoint(curve *F2mCurve, x, y FieldElement, compressed bool) (*F2mPoint, error) {
	if (x == nil) != (y == nil) {
		return nil, fmt.Errorf("ec: exactly one coordinate is absent: %w", ErrFieldMismatch)
	}
	if x != nil {
		if err := CheckF2mFieldElements(x, y); err != nil {
			return nil, err
		}
		if err := CheckF2mFieldElements(x, curve.a); err != nil {
			return nil, err
		}
	}
	return &F2mPoint{curve: curve, x: x, y: y, compressed: compressed}, nil
}

// NewF2mInfinity returns the point at infinity on the given curve.
func NewF2mInfinity(curve *F2mCurve) *F2mPoint {
	return &F2mPoint{curve: curve}
}

func (p *F2mPoint) Curve() Curve { return p.curve }

func (p *F2mPoint) X() FieldElement { return p.x }

func (p *F2mPoint) Y() FieldElement { return p.y }

func (p *F2mPoint) IsInfinity() bool { return p.x == nil && p.y == nil }

func (p *F2mPoint) IsCompressed() bool { return p.compressed }

func (p *F2mPoint) Equal(other Point) bool { return pointsEqual(p, other) }

func (p *F2mPoint) HashCode() uint32 { return pointHashCode(p) }

// Add returns the sum of two points on the same curve. Unlike the
// prime-field variant it handles every case: either operand at infinity,
// doubling (b equals the receiver) and inverse operands (the sum is the
// point at infinity).
func (p *F2mPoint) Add(b Point) (Point, error) {
	if !p.curve.Equal(b.Curve()) {
		return nil, fmt.Errorf("ec: %w", ErrCurveMismatch)
	}
	o, ok := b.(*F2mPoint)
	if !ok {
		panic("ec: mixed point types")
	}

	if p.IsInfinity() {
		if o.IsInfinity() {
			return NewF2mInfinity(p.curve), nil
		}
		return &F2mPoint{curve: p.curve, x: o.x, y: o.y, compressed: p.compressed}, nil
	}
	if o.IsInfinity() {
		return p, nil
	}

	if err := CheckF2mFieldElements(p.x, o.x); err != nil {
		return nil, err
	}

	if p.x.Equal(o.x) {
		if p.y.Equal(o.y) {
			// b equals the receiver: the sum is the double.
			return p.Twice()
		}
		// b is the receiver's inverse: the sum is the identity.
		return NewF2mInfinity(p.curve), nil
	}

	lambda, err := p.y.Add(o.y).Divide(p.x.Add(o.x))
	if err != nil {
		return nil, err
	}
	x3 := lambda.Square().Add(lambda).Add(p.x).Add(o.x).Add(p.curve.a)
	y3 := lambda.Multiply(p.x.Add(x3)).Add(x3).Add(p.y)
	return &F2mPoint{curve: p.curve, x: x3, y: y3, compressed: p.compressed}, nil
}

// Subtract returns P - b, computed as P + (-b).
func (p *F2mPoint) Subtract(b Point) (Point, error) {
	o, ok := b.(*F2mPoint)
	if !ok {
		panic("ec: mixed point types")
	}
	if o.IsInfinity() {
		return p.Add(o)
	}
	minusB := &F2mPoint{curve: o.curve, x: o.x, y: o.y.Negate(), compressed: p.compressed}
	return p.Add(minusB)
}

// Twice returns 2P. The point at infinity and any point with x = 0 double
// to infinity: when x = 0, (x, y) = (x, x + y) and the point is its own
// inverse.
func (p *F2mPoint) Twice() (Point, error) {
	if p.IsInfinity() || p.x.IsZero() {
		return NewF2mInfinity(p.curve), nil
	}

	quot, err := p.y.Divide(p.x)
	if err != nil {
		return nil, err
	}
	lambda := p.x.Add(quot)
	x3 := lambda.Square().Add(lambda).Add(p.curve.a)
	y3 := p.x.Square().Add(lambda.Multiply(x3)).Add(x3)
	return &F2mPoint{curve: p.curve, x: x3, y: y3, compressed: p.compressed}, nil
}

// Multiply returns k·P by right-to-left double-and-add over the bits of k.
// The scalar is not reduced by the curve order.
func (p *F2mPoint) Multiply(k *big.Int) (Point, error) {
	if k.Sign() < 0 {
		return nil, fmt.Errorf("ec: scalar must be non-negative")
	}

	var base Point = p
	var acc Point = NewF2mInfinity(p.curve)
	var err error
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			if acc, err = acc.Add(base); err != nil {
				return nil, err
			}
		}
		if base, err = base.Twice(); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Encoded returns the X9.62 encoding. Per X9.62 4.2.2 the compressed tag bit
// ỹ is the low bit of y·x⁻¹, defined as 0 when x = 0. The point at infinity
// has no defined encoding and returns ErrInfinityEncoding.
func (p *F2mPoint) Encoded() ([]byte, error) {
	if p.IsInfinity() {
		return nil, ErrInfinityEncoding
	}
	byteCount := x9.ByteLength(p.x.FieldSize())
	xBytes, err := x9.IntegerToBytes(p.x.BigInt(), byteCount)
	if err != nil {
		return nil, err
	}

	if p.compressed {
		tag := byte(0x02)
		if !p.x.IsZero() {
			xInv, err := p.x.Invert()
			if err != nil {
				return nil, err
			}
			if p.y.Multiply(xInv).TestBit(0) {
				tag = 0x03
			}
		}
		return append([]byte{tag}, xBytes...), nil
	}

	yBytes, err := x9.IntegerToBytes(p.y.BigInt(), byteCount)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+2*byteCount)
	out = append(out, 0x04)
	out = append(out, xBytes...)
	return append(out, yBytes...), nil
}

package ec

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecmath/internal/x9"
)

// Curve describes a short-Weierstrass elliptic curve over one of the two
// supported field kinds. A curve owns its parameter field elements; points
// hold a non-owning reference back to their curve, so a curve must outlive
// every point derived from it.
type Curve interface {
	// FieldSize returns the size of the underlying field in bits.
	FieldSize() int

	// A returns the curve coefficient a.
	A() FieldElement

	// B returns the curve coefficient b.
	B() FieldElement

	// FromBigInt converts an integer into an element of the curve's field,
	// reducing it into range.
	FromBigInt(x *big.Int) FieldElement

	// Infinity returns the point at infinity, the group's additive identity.
	Infinity() Point

	// DecodePoint parses an X9.62 octet-string encoding (tags 0x00, 0x02,
	// 0x03, 0x04) into a point on this curve.
	DecodePoint(data []byte) (Point, error)

	// Equal reports whether the other curve has identical parameters.
	Equal(other Curve) bool
}

// FpCurve is the curve y² = x³ + ax + b over the prime field of order q.
type FpCurve struct {
	q *big.Int
	a *FpFieldElement
	b *FpFieldElement
}

// NewFpCurve creates a prime-field curve with the given modulus and
// coefficients. Coefficients are reduced mod q. q must be prime; field
// inversion (and with it point addition and doubling) is undefined for a
// composite modulus.
func NewFpCurve(q, a, b *big.Int) *FpCurve {
	c := &FpCurve{q: new(big.Int).Set(q)}
	c.a = c.FromBigInt(a).(*FpFieldElement)
	c.b = c.FromBigInt(b).(*FpFieldElement)
	return c
}

// Q returns the prime order of the underlying field.
func (c *FpCurve) Q() *big.Int { return new(big.Int).Set(c.q) }

func (c *FpCurve) FieldSize() int { return c.q.BitLen() }

func (c *FpCurve) A() FieldElement { return c.a }

func (c *FpCurve) B() FieldElement { return c.b }

func (c *FpCurve) FromBigInt(x *big.Int) FieldElement {
	return &FpFieldElement{q: c.q, x: new(big.Int).Mod(x, c.q)}
}

func (c *FpCurve) Infinity() Point {
	return &FpPoint{curve: c}
}

func (c *FpCurve) Equal(other Curve) bool {
	o, ok := other.(*FpCurve)
	if !ok {
		return false
	}
	return c.q.Cmp(o.q) == 0 && c.a.Equal(o.a) && c.b.Equal(o.b)
}

// DecodePoint parses an X9.62 encoding. For a compressed encoding the y
// coordinate is recovered by solving y² = x³ + ax + b and picking the square
// root whose parity matches the tag's low bit.
func (c *FpCurve) DecodePoint(data []byte) (Point, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ec: empty point encoding")
	}
	byteLen := x9.ByteLength(c.FieldSize())

	switch data[0] {
	case 0x00:
		if len(data) != 1 {
			return nil, fmt.Errorf("ec: infinity encoding must be a single octet")
		}
		return c.Infinity(), nil

	case 0x02, 0x03:
		if len(data) != 1+byteLen {
			return nil, fmt.Errorf("ec: compressed encoding must be %d octets", 1+byteLen)
		}
		xInt := x9.BytesToInteger(data[1:])
		if xInt.Cmp(c.q) >= 0 {
			return nil, fmt.Errorf("ec: x coordinate not a field element")
		}
		x := c.FromBigInt(xInt)
		// y² = x³ + ax + b
		alpha := x.Square().Add(c.a).Multiply(x).Add(c.b)
		beta := new(big.Int).ModSqrt(alpha.BigInt(), c.q)
		if beta == nil {
			return nil, fmt.Errorf("ec: invalid compressed point: no square root")
		}
		if beta.Bit(0) != uint(data[0]&1) {
			beta.Sub(c.q, beta)
		}
		return &FpPoint{curve: c, x: x, y: c.FromBigInt(beta), compressed: true}, nil

	case 0x04:
		if len(data) != 1+2*byteLen {
			return nil, fmt.Errorf("ec: uncompressed encoding must be %d octets", 1+2*byteLen)
		}
		xInt := x9.BytesToInteger(data[1 : 1+byteLen])
		yInt := x9.BytesToInteger(data[1+byteLen:])
		if xInt.Cmp(c.q) >= 0 || yInt.Cmp(c.q) >= 0 {
			return nil, fmt.Errorf("ec: coordinate not a field element")
		}
		return &FpPoint{curve: c, x: c.FromBigInt(xInt), y: c.FromBigInt(yInt)}, nil

	default:
		return nil, fmt.Errorf("ec: unknown point encoding tag 0x%02x", data[0])
	}
}

// F2mCurve is the curve y² + xy = x³ + ax² + b over GF(2^m) with a
// trinomial (k2 = k3 = 0) or pentanomial reduction basis.
type F2mCurve struct {
	m          int
	k1, k2, k3 int
	a          *F2mFieldElement
	b          *F2mFieldElement
}

// NewF2mCurve creates a binary-field curve. The coefficients are reduced
// into the field.
func NewF2mCurve(m, k1, k2, k3 int, a, b *big.Int) (*F2mCurve, error) {
	c := &F2mCurve{m: m, k1: k1, k2: k2, k3: k3}
	// Validate the basis once through the element constructor.
	if _, err := NewF2mFieldElement(m, k1, k2, k3, new(big.Int)); err != nil {
		return nil, err
	}
	c.a = c.FromBigInt(a).(*F2mFieldElement)
	c.b = c.FromBigInt(b).(*F2mFieldElement)
	return c, nil
}

// M returns the field degree.
func (c *F2mCurve) M() int { return c.m }

func (c *F2mCurve) FieldSize() int { return c.m }

func (c *F2mCurve) A() FieldElement { return c.a }

func (c *F2mCurve) B() FieldElement { return c.b }

func (c *F2mCurve) FromBigInt(x *big.Int) FieldElement {
	e := &F2mFieldElement{m: c.m, k1: c.k1, k2: c.k2, k3: c.k3}
	e.x = e.reduce(new(big.Int).Set(x))
	return e
}

func (c *F2mCurve) Infinity() Point {
	return NewF2mInfinity(c)
}

func (c *F2mCurve) Equal(other Curve) bool {
	o, ok := other.(*F2mCurve)
	if !ok {
		return false
	}
	return c.m == o.m && c.k1 == o.k1 && c.k2 == o.k2 && c.k3 == o.k3 &&
		c.a.Equal(o.a) && c.b.Equal(o.b)
}

// DecodePoint parses an X9.62 encoding. Compressed decoding recovers y by
// solving z² + z = x + a + b·x⁻² for z = y/x; for x = 0 the unique solution
// is y = b^(2^(m-1)), the field square root of b.
func (c *F2mCurve) DecodePoint(data []byte) (Point, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ec: empty point encoding")
	}
	byteLen := x9.ByteLength(c.m)

	switch data[0] {
	case 0x00:
		if len(data) != 1 {
			return nil, fmt.Errorf("ec: infinity encoding must be a single octet")
		}
		return c.Infinity(), nil

	case 0x02, 0x03:
		if len(data) != 1+byteLen {
			return nil, fmt.Errorf("ec: compressed encoding must be %d octets", 1+byteLen)
		}
		xInt := x9.BytesToInteger(data[1:])
		if xInt.BitLen() > c.m {
			return nil, fmt.Errorf("ec: x coordinate not a field element")
		}
		x := c.FromBigInt(xInt).(*F2mFieldElement)
		y, err := c.decompress(x, data[0]&1)
		if err != nil {
			return nil, err
		}
		return &F2mPoint{curve: c, x: x, y: y, compressed: true}, nil

	case 0x04:
		if len(data) != 1+2*byteLen {
			return nil, fmt.Errorf("ec: uncompressed encoding must be %d octets", 1+2*byteLen)
		}
		xInt := x9.BytesToInteger(data[1 : 1+byteLen])
		yInt := x9.BytesToInteger(data[1+byteLen:])
		if xInt.BitLen() > c.m || yInt.BitLen() > c.m {
			return nil, fmt.Errorf("ec: coordinate not a field element")
		}
		return NewF2mPoint(c, c.FromBigInt(xInt), c.FromBigInt(yInt), false)

	default:
		return nil, fmt.Errorf("ec: unknown point encoding tag 0x%02x", data[0])
	}
}

func (c *F2mCurve) decompress(x *F2mFieldElement, yTilde byte) (*F2mFieldElement, error) {
	if x.IsZero() {
		// y² = b; square roots in GF(2^m) are unique.
		y := FieldElement(c.b)
		for i := 0; i < c.m-1; i++ {
			y = y.Square()
		}
		return y.(*F2mFieldElement), nil
	}

	xInv, err := x.Invert()
	if err != nil {
		return nil, err
	}
	beta := x.Add(c.a).Add(c.b.Multiply(xInv.Square())).(*F2mFieldElement)
	z, err := c.solveQuadratic(beta)
	if err != nil {
		return nil, err
	}
	if z.TestBit(0) != (yTilde == 1) {
		z = z.Add(c.FromBigInt(big.NewInt(1))).(*F2mFieldElement)
	}
	return x.Multiply(z).(*F2mFieldElement), nil
}

// solveQuadratic finds z with z² + z = beta, using the randomized trace
// construction; it fails when the equation has no solution (the trace of
// beta is non-zero, meaning the x coordinate is not on the curve).
func (c *F2mCurve) solveQuadratic(beta *F2mFieldElement) (*F2mFieldElement, error) {
	if beta.IsZero() {
		return beta, nil
	}
	zero := c.FromBigInt(new(big.Int))

	for {
		tInt, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(c.m)))
		if err != nil {
			return nil, fmt.Errorf("ec: sampling trace candidate: %w", err)
		}
		t := c.FromBigInt(tInt)
		z := zero
		w := FieldElement(beta)
		for i := 1; i < c.m; i++ {
			w2 := w.Square()
			z = z.Square().Add(w2.Multiply(t))
			w = w2.Add(beta)
		}
		if !w.IsZero() {
			return nil, fmt.Errorf("ec: invalid compressed point: quadratic has no solution")
		}
		gamma := z.Square().Add(z)
		if !gamma.IsZero() {
			return z.(*F2mFieldElement), nil
		}
	}
}

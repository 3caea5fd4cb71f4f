// Package ec implements affine elliptic-curve point arithmetic over prime
// fields and binary (characteristic-2) extension fields, together with the
// ANSI X9.62 compressed and uncompressed point encodings.
//
// The package is a closed set of exactly two curve/field variants: Fp (short
// Weierstrass over integers mod a prime) and F2m (short Weierstrass over a
// polynomial-basis GF(2^m)). All values are immutable; every operation
// returns a new value, so curves, field elements and points are safe to share
// between goroutines.
package ec

import (
	"fmt"
	"hash/fnv"
	"math/big"
)

// FieldElement is an element of exactly one finite field. Arithmetic is only
// defined between elements of the same field; combining elements of
// different fields is a programmer error and panics, except where the F2m
// layer performs explicit membership checks (see CheckF2mFieldElements).
type FieldElement interface {
	// BigInt returns the element's integer value. For F2m elements the bits
	// of the integer are the polynomial coefficients.
	BigInt() *big.Int

	// FieldSize returns the size of the field in bits.
	FieldSize() int

	Add(b FieldElement) FieldElement
	Subtract(b FieldElement) FieldElement
	Multiply(b FieldElement) FieldElement
	Square() FieldElement
	Negate() FieldElement

	// Divide returns the quotient of the receiver by b. Dividing by the
	// field's additive identity returns ErrDivByZero.
	Divide(b FieldElement) (FieldElement, error)

	// Invert returns the multiplicative inverse. Inverting the additive
	// identity returns ErrDivByZero.
	Invert() (FieldElement, error)

	// Equal reports whether b has the same value in the same kind of field.
	// Unlike the arithmetic methods it never panics: elements of different
	// field kinds simply compare unequal.
	Equal(b FieldElement) bool

	// TestBit reports whether bit n of the element's integer value is set.
	TestBit(n int) bool

	// IsZero reports whether the element is the additive identity.
	IsZero() bool

	// HashCode returns a hash of the element's value.
	HashCode() uint32
}

func hashBig(n *big.Int) uint32 {
	h := fnv.New32a()
	h.Write(n.Bytes())
	return h.Sum32()
}

// FpFieldElement is an integer modulo a prime q.
type FpFieldElement struct {
	q *big.Int
	x *big.Int
}

// NewFpFieldElement creates an element of the prime field of order q.
// The value must lie in [0, q). q must be prime: inversion relies on the
// modulus being prime and is undefined for composite q.
func NewFpFieldElement(q, x *big.Int) (*FpFieldElement, error) {
	if x.Sign() < 0 || x.Cmp(q) >= 0 {
		return nil, fmt.Errorf("ec: value not in field range [0, q)")
	}
	return &FpFieldElement{q: new(big.Int).Set(q), x: new(big.Int).Set(x)}, nil
}

func (e *FpFieldElement) wrap(x *big.Int) *FpFieldElement {
	return &FpFieldElement{q: e.q, x: x.Mod(x, e.q)}
}

func fpOperand(b FieldElement) *FpFieldElement {
	o, ok := b.(*FpFieldElement)
	if !ok {
		panic("ec: mixed field element types")
	}
	return o
}

func (e *FpFieldElement) BigInt() *big.Int { return new(big.Int).Set(e.x) }

// Q returns the field's prime order.
func (e *FpFieldElement) Q() *big.Int { return new(big.Int).Set(e.q) }

func (e *FpFieldElement) FieldSize() int { return e.q.BitLen() }

func (e *FpFieldElement) Add(b FieldElement) FieldElement {
	return e.wrap(new(big.Int).Add(e.x, fpOperand(b).x))
}

func (e *FpFieldElement) Subtract(b FieldElement) FieldElement {
	return e.wrap(new(big.Int).Sub(e.x, fpOperand(b).x))
}

func (e *FpFieldElement) Multiply(b FieldElement) FieldElement {
	return e.wrap(new(big.Int).Mul(e.x, fpOperand(b).x))
}

func (e *FpFieldElement) Square() FieldElement {
	return e.wrap(new(big.Int).Mul(e.x, e.x))
}

func (e *FpFieldElement) Negate() FieldElement {
	return e.wrap(new(big.Int).Neg(e.x))
}

func (e *FpFieldElement) Divide(b FieldElement) (FieldElement, error) {
	inv, err := b.Invert()
	if err != nil {
		return nil, err
	}
	return e.Multiply(inv), nil
}

func (e *FpFieldElement) Invert() (FieldElement, error) {
	if e.x.Sign() == 0 {
		return nil, ErrDivByZero
	}
	return &FpFieldElement{q: e.q, x: new(big.Int).ModInverse(e.x, e.q)}, nil
}

func (e *FpFieldElement) Equal(b FieldElement) bool {
	o, ok := b.(*FpFieldElement)
	if !ok {
		return false
	}
	return e.q.Cmp(o.q) == 0 && e.x.Cmp(o.x) == 0
}

func (e *FpFieldElement) TestBit(n int) bool { return e.x.Bit(n) == 1 }

func (e *FpFieldElement) IsZero() bool { return e.x.Sign() == 0 }

func (e *FpFieldElement) HashCode() uint32 { return hashBig(e.x) }

// F2mFieldElement is an element of GF(2^m) in polynomial basis. The reduction
// polynomial is x^m + x^k3 + x^k2 + x^k1 + 1 for a pentanomial basis, or
// x^m + x^k1 + 1 for a trinomial basis (k2 == k3 == 0).
type F2mFieldElement struct {
	m          int
	k1, k2, k3 int
	x          *big.Int
}

// NewF2mFieldElement creates an element of GF(2^m) with the given reduction
// polynomial. For a trinomial basis pass k2 = k3 = 0. The value's bit length
// must not exceed m.
func NewF2mFieldElement(m, k1, k2, k3 int, x *big.Int) (*F2mFieldElement, error) {
	if k1 <= 0 || k1 >= m {
		return nil, fmt.Errorf("ec: k1 must satisfy 0 < k1 < m")
	}
	if k2 == 0 && k3 != 0 || k2 != 0 && k3 == 0 {
		return nil, fmt.Errorf("ec: k2 and k3 must both be zero (trinomial) or both non-zero (pentanomial)")
	}
	if k2 != 0 && (k2 <= k1 || k3 <= k2 || k3 >= m) {
		return nil, fmt.Errorf("ec: pentanomial exponents must satisfy k1 < k2 < k3 < m")
	}
	if x.Sign() < 0 || x.BitLen() > m {
		return nil, fmt.Errorf("ec: value exceeds field degree %d", m)
	}
	return &F2mFieldElement{m: m, k1: k1, k2: k2, k3: k3, x: new(big.Int).Set(x)}, nil
}

// CheckF2mFieldElements verifies that a and b are both binary-field elements
// of the same field (same degree and reduction polynomial). It returns
// ErrFieldMismatch otherwise.
func CheckF2mFieldElements(a, b FieldElement) error {
	fa, okA := a.(*F2mFieldElement)
	fb, okB := b.(*F2mFieldElement)
	if !okA || !okB {
		return fmt.Errorf("ec: operands are not binary field elements: %w", ErrFieldMismatch)
	}
	if fa.m != fb.m || fa.k1 != fb.k1 || fa.k2 != fb.k2 || fa.k3 != fb.k3 {
		return fmt.Errorf("ec: GF(2^%d) vs GF(2^%d): %w", fa.m, fb.m, ErrFieldMismatch)
	}
	return nil
}

func f2mOperand(e *F2mFieldElement, b FieldElement) *F2mFieldElement {
	if err := CheckF2mFieldElements(e, b); err != nil {
		panic(err.Error())
	}
	return b.(*F2mFieldElement)
}

func (e *F2mFieldElement) wrap(x *big.Int) *F2mFieldElement {
	return &F2mFieldElement{m: e.m, k1: e.k1, k2: e.k2, k3: e.k3, x: x}
}

// reductionPoly returns the full reduction polynomial as a bit vector.
func (e *F2mFieldElement) reductionPoly() *big.Int {
	r := new(big.Int).SetBit(new(big.Int), e.m, 1)
	r.SetBit(r, e.k1, 1)
	if e.k2 != 0 {
		r.SetBit(r, e.k2, 1)
		r.SetBit(r, e.k3, 1)
	}
	r.SetBit(r, 0, 1)
	return r
}

// reduce brings a polynomial of arbitrary degree back below degree m.
func (e *F2mFieldElement) reduce(x *big.Int) *big.Int {
	r := e.reductionPoly()
	for x.BitLen() > e.m {
		shifted := new(big.Int).Lsh(r, uint(x.BitLen()-1-e.m))
		x.Xor(x, shifted)
	}
	return x
}

func (e *F2mFieldElement) BigInt() *big.Int { return new(big.Int).Set(e.x) }

// M returns the field degree m.
func (e *F2mFieldElement) M() int { return e.m }

func (e *F2mFieldElement) FieldSize() int { return e.m }

// Add is addition in characteristic 2: coefficient-wise XOR.
func (e *F2mFieldElement) Add(b FieldElement) FieldElement {
	o := f2mOperand(e, b)
	return e.wrap(new(big.Int).Xor(e.x, o.x))
}

// Subtract is identical to Add in characteristic 2.
func (e *F2mFieldElement) Subtract(b FieldElement) FieldElement {
	return e.Add(b)
}

// Multiply is carry-less polynomial multiplication followed by reduction
// modulo the field polynomial.
func (e *F2mFieldElement) Multiply(b FieldElement) FieldElement {
	o := f2mOperand(e, b)
	acc := new(big.Int)
	for i := 0; i < o.x.BitLen(); i++ {
		if o.x.Bit(i) == 1 {
			acc.Xor(acc, new(big.Int).Lsh(e.x, uint(i)))
		}
	}
	return e.wrap(e.reduce(acc))
}

func (e *F2mFieldElement) Square() FieldElement {
	return e.Multiply(e)
}

// Negate is the identity in characteristic 2: every element is its own
// additive inverse.
func (e *F2mFieldElement) Negate() FieldElement {
	return e.wrap(new(big.Int).Set(e.x))
}

func (e *F2mFieldElement) Divide(b FieldElement) (FieldElement, error) {
	inv, err := b.Invert()
	if err != nil {
		return nil, err
	}
	return e.Multiply(inv), nil
}

// Invert uses the extended Euclidean algorithm over GF(2)[x].
func (e *F2mFieldElement) Invert() (FieldElement, error) {
	if e.x.Sign() == 0 {
		return nil, ErrDivByZero
	}
	u := new(big.Int).Set(e.x)
	v := e.reductionPoly()
	b := big.NewInt(1)
	c := new(big.Int)
	for u.BitLen() > 1 {
		j := u.BitLen() - v.BitLen()
		if j < 0 {
			u, v = v, u
			b, c = c, b
			j = -j
		}
		u.Xor(u, new(big.Int).Lsh(v, uint(j)))
		b.Xor(b, new(big.Int).Lsh(c, uint(j)))
	}
	return e.wrap(e.reduce(b)), nil
}

func (e *F2mFieldElement) Equal(b FieldElement) bool {
	o, ok := b.(*F2mFieldElement)
	if !ok {
		return false
	}
	return e.m == o.m && e.k1 == o.k1 && e.k2 == o.k2 && e.k3 == o.k3 &&
		e.x.Cmp(o.x) == 0
}

func (e *F2mFieldElement) TestBit(n int) bool { return e.x.Bit(n) == 1 }

func (e *F2mFieldElement) IsZero() bool { return e.x.Sign() == 0 }

func (e *F2mFieldElement) HashCode() uint32 { return hashBig(e.x) }

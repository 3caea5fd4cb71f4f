package ec

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 returns the secp256k1 curve (y² = x³ + 7 over the SEC prime) and
// its generator, built on the generic prime-field arithmetic. The parameters
// are taken from the decred secp256k1 implementation, which also serves as
// the differential reference in the tests.
func Secp256k1() (*FpCurve, *FpPoint) {
	params := secp256k1.S256().Params()
	curve := NewFpCurve(params.P, new(big.Int), params.B)
	g := NewFpPoint(curve, curve.FromBigInt(params.Gx), curve.FromBigInt(params.Gy), false)
	return curve, g
}

// Secp256k1Order returns the order of the secp256k1 generator.
func Secp256k1Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

// sect163k1 (NIST K-163): y² + xy = x³ + x² + 1 over GF(2^163) with the
// pentanomial x^163 + x^7 + x^6 + x^3 + 1.
var (
	k163Gx, _ = new(big.Int).SetString("02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8", 16)
	k163Gy, _ = new(big.Int).SetString("0289070FB05D38FF58321F2E800536D538CCDAA3D9", 16)
	k163N, _  = new(big.Int).SetString("04000000000000000000020108A2E0CC0D99F8A5EF", 16)
)

// K163 returns the NIST K-163 (sect163k1) curve and its generator,
// exercising the binary-field arithmetic with standardized parameters.
func K163() (*F2mCurve, *F2mPoint) {
	curve, err := NewF2mCurve(163, 3, 6, 7, big.NewInt(1), big.NewInt(1))
	if err != nil {
		panic("ec: bad K-163 parameters: " + err.Error())
	}
	g, err := NewF2mPoint(curve, curve.FromBigInt(k163Gx), curve.FromBigInt(k163Gy), false)
	if err != nil {
		panic("ec: bad K-163 generator: " + err.Error())
	}
	return curve, g
}

// K163Order returns the order of the K-163 generator (cofactor 2).
func K163Order() *big.Int {
	return new(big.Int).Set(k163N)
}

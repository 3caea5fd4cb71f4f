// Package pbm implements the RFC 4211 password-based MAC: the key is
// derived by appending a salt to the password and iterating a one-way hash,
// and the tag is an HMAC under that key. It is a thin construction over an
// injected digest; no algorithm choice is hard-coded.
package pbm

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"hash"
	"io"
)

const (
	defaultSaltLength     = 20
	defaultIterationCount = 1000

	minSaltLength     = 8
	minIterationCount = 100
)

// DeriveKey computes the iterated one-way function of RFC 4211 section 4.4:
// K = password ‖ salt, then K = digest(K) repeated iterations times.
func DeriveKey(password, salt []byte, iterations int, digest func() hash.Hash) []byte {
	k := make([]byte, 0, len(password)+len(salt))
	k = append(k, password...)
	k = append(k, salt...)
	for i := 0; i < iterations; i++ {
		h := digest()
		h.Write(k)
		k = h.Sum(nil)
	}
	return k
}

// Builder assembles MAC calculators for a chosen one-way function, MAC
// digest, salt length and iteration count.
type Builder struct {
	owf        func() hash.Hash
	mac        func() hash.Hash
	saltLength int
	iterations int
	random     io.Reader
}

// NewBuilder returns a Builder using the given one-way function for both key
// derivation and the HMAC, a 20-octet salt and 1000 iterations. Passing nil
// selects SHA-1, the RFC 4211 default.
func NewBuilder(owf func() hash.Hash) *Builder {
	if owf == nil {
		owf = sha1.New
	}
	return &Builder{
		owf:        owf,
		mac:        owf,
		saltLength: defaultSaltLength,
		iterations: defaultIterationCount,
		random:     rand.Reader,
	}
}

// SetSaltLength overrides the generated salt length in octets; it must be at
// least 8.
func (b *Builder) SetSaltLength(n int) error {
	if n < minSaltLength {
		return fmt.Errorf("pbm: salt length must be at least %d octets", minSaltLength)
	}
	b.saltLength = n
	return nil
}

// SetIterationCount overrides the key-derivation iteration count; it must be
// at least 100.
func (b *Builder) SetIterationCount(n int) error {
	if n < minIterationCount {
		return fmt.Errorf("pbm: iteration count must be at least %d", minIterationCount)
	}
	b.iterations = n
	return nil
}

// SetMAC selects a different digest for the HMAC than for key derivation.
func (b *Builder) SetMAC(mac func() hash.Hash) *Builder {
	b.mac = mac
	return b
}

// SetRandom overrides the salt source, mainly for deterministic tests.
func (b *Builder) SetRandom(r io.Reader) *Builder {
	b.random = r
	return b
}

// Build generates a fresh salt and returns a calculator keyed from the
// password.
func (b *Builder) Build(password []byte) (*Calculator, error) {
	salt := make([]byte, b.saltLength)
	if _, err := io.ReadFull(b.random, salt); err != nil {
		return nil, fmt.Errorf("pbm: generating salt: %w", err)
	}
	return b.BuildWithSalt(password, salt)
}

// BuildWithSalt returns a calculator keyed from the password and the caller's
// salt, as when verifying a received MAC.
func (b *Builder) BuildWithSalt(password, salt []byte) (*Calculator, error) {
	if len(salt) < minSaltLength {
		return nil, fmt.Errorf("pbm: salt must be at least %d octets", minSaltLength)
	}
	key := DeriveKey(password, salt, b.iterations, b.owf)
	return &Calculator{
		salt: salt,
		mac:  hmac.New(b.mac, key),
	}, nil
}

// Calculator accumulates message data and produces the password-based MAC.
type Calculator struct {
	salt []byte
	mac  hash.Hash
}

// Salt returns the salt the key was derived with; a verifier needs it
// alongside the iteration count to rebuild the key.
func (c *Calculator) Salt() []byte {
	out := make([]byte, len(c.salt))
	copy(out, c.salt)
	return out
}

// Write appends message data to be authenticated.
func (c *Calculator) Write(p []byte) (int, error) {
	return c.mac.Write(p)
}

// MAC returns the tag over all data written so far.
func (c *Calculator) MAC() []byte {
	return c.mac.Sum(nil)
}

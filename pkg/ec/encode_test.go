package ec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFpCompressedTagParity(t *testing.T) {
	c, _ := curve23()

	// Points are encoded as given; the codec does not verify curve
	// membership, so the tag rule can be checked on bare coordinates.
	odd := NewFpPoint(c, c.FromBigInt(big.NewInt(5)), c.FromBigInt(big.NewInt(7)), true)
	enc, err := odd.Encoded()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x05}, enc)

	even := NewFpPoint(c, c.FromBigInt(big.NewInt(5)), c.FromBigInt(big.NewInt(8)), true)
	enc, err = even.Encoded()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x05}, enc)
}

func TestFpUncompressedEncoding(t *testing.T) {
	_, g := curve23()

	enc, err := g.Encoded()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x0a}, enc)
}

func TestFpEncodeRoundTrip(t *testing.T) {
	c, g := curve23()

	for k := int64(1); k < curve23Order; k++ {
		p, err := g.Multiply(big.NewInt(k))
		require.NoError(t, err)

		for _, compressed := range []bool{false, true} {
			fp := p.(*FpPoint)
			enc, err := NewFpPoint(c, fp.x, fp.y, compressed).Encoded()
			require.NoError(t, err)
			dec, err := c.DecodePoint(enc)
			require.NoError(t, err, "k=%d compressed=%v", k, compressed)
			assert.True(t, dec.Equal(p), "k=%d compressed=%v", k, compressed)
			assert.Equal(t, compressed, dec.IsCompressed())
		}
	}
}

func TestFpInfinityEncoding(t *testing.T) {
	c, _ := curve23()

	enc, err := c.Infinity().Encoded()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, enc)

	dec, err := c.DecodePoint(enc)
	require.NoError(t, err)
	assert.True(t, dec.IsInfinity())
}

func TestFpDecodeRejects(t *testing.T) {
	c, _ := curve23()

	_, err := c.DecodePoint(nil)
	assert.Error(t, err)
	_, err = c.DecodePoint([]byte{0x05, 0x03})
	assert.Error(t, err)
	// Wrong length for the tag.
	_, err = c.DecodePoint([]byte{0x02})
	assert.Error(t, err)
	_, err = c.DecodePoint([]byte{0x04, 0x03})
	assert.Error(t, err)
	// Scan all x: only x values actually on the curve decode. The group is
	// cyclic of order 28, so the 27 finite points cover 14 distinct x
	// values (13 ± pairs plus the single 2-torsion point with y = 0).
	residues := 0
	for x := int64(0); x < 23; x++ {
		if _, err := c.DecodePoint([]byte{0x02, byte(x)}); err == nil {
			residues++
		}
	}
	assert.Equal(t, 14, residues)
}

func TestF2mEncodeRoundTrip(t *testing.T) {
	c, g := K163()

	for _, k := range []int64{1, 2, 3, 7, 100} {
		p, err := g.Multiply(big.NewInt(k))
		require.NoError(t, err)

		for _, compressed := range []bool{false, true} {
			fp := p.(*F2mPoint)
			src, err := NewF2mPoint(c, fp.x, fp.y, compressed)
			require.NoError(t, err)
			enc, err := src.Encoded()
			require.NoError(t, err)
			if compressed {
				assert.Contains(t, []byte{0x02, 0x03}, enc[0])
				assert.Equal(t, 1+21, len(enc))
			} else {
				assert.Equal(t, byte(0x04), enc[0])
				assert.Equal(t, 1+42, len(enc))
			}
			dec, err := c.DecodePoint(enc)
			require.NoError(t, err, "k=%d compressed=%v", k, compressed)
			assert.True(t, dec.Equal(p), "k=%d compressed=%v", k, compressed)
		}
	}
}

func TestF2mCompressedTagZeroX(t *testing.T) {
	c := toyF2mCurve(t, 1)

	// X9.62 defines ỹ = 0 when x = 0, so the tag stays 0x02 whatever y is.
	p, err := NewF2mPoint(c, c.FromBigInt(new(big.Int)), c.FromBigInt(big.NewInt(13)), true)
	require.NoError(t, err)
	enc, err := p.Encoded()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00}, enc)
}

func TestF2mCompressedTagParity(t *testing.T) {
	c := toyF2mCurve(t, 1)

	// x = 1 makes y · x⁻¹ = y, so the tag follows y's low bit.
	p, err := NewF2mPoint(c, c.FromBigInt(big.NewInt(1)), c.FromBigInt(big.NewInt(1)), true)
	require.NoError(t, err)
	enc, err := p.Encoded()
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), enc[0])

	p, err = NewF2mPoint(c, c.FromBigInt(big.NewInt(1)), c.FromBigInt(big.NewInt(2)), true)
	require.NoError(t, err)
	enc, err = p.Encoded()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), enc[0])
}

func TestF2mInfinityEncodingFails(t *testing.T) {
	c, _ := K163()

	_, err := NewF2mInfinity(c).Encoded()
	assert.True(t, errors.Is(err, ErrInfinityEncoding))

	// Decoding the X9.62 infinity octet still works.
	dec, err := c.DecodePoint([]byte{0x00})
	require.NoError(t, err)
	assert.True(t, dec.IsInfinity())
}

func TestF2mDecodeRejects(t *testing.T) {
	c, _ := K163()

	_, err := c.DecodePoint([]byte{0x07, 0x01})
	assert.Error(t, err)
	_, err = c.DecodePoint([]byte{0x02, 0x01})
	assert.Error(t, err)
	_, err = c.DecodePoint([]byte{0x00, 0x00})
	assert.Error(t, err)
}

// Package record holds the record-layer cipher abstraction used while a
// handshake is still in progress, before any traffic keys exist.
package record

// Cipher transforms record payloads between plaintext and ciphertext. The
// record type octet is part of the authenticated context for real ciphers.
type Cipher interface {
	EncodePlaintext(recordType uint8, plaintext []byte) []byte
	DecodeCiphertext(recordType uint8, ciphertext []byte) ([]byte, error)
}

// NullCipher is the pass-through cipher negotiated implicitly at the start
// of a handshake. It must only be used until real keys are established.
type NullCipher struct{}

func (NullCipher) EncodePlaintext(_ uint8, plaintext []byte) []byte {
	return copyData(plaintext)
}

func (NullCipher) DecodeCiphertext(_ uint8, ciphertext []byte) ([]byte, error) {
	return copyData(ciphertext), nil
}

// copyData returns a fresh slice so callers never alias the record buffer.
func copyData(text []byte) []byte {
	out := make([]byte, len(text))
	copy(out, text)
	return out
}

// Package crypto wraps the standard library block-cipher primitives behind a
// streaming encrypt/decrypt contract keyed by OpenSSL-style algorithm names.
// Callers feed buffers through Update and collect the remainder from Final,
// concatenating both outputs.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// Errors returned for malformed cipher input.
var (
	// ErrUnknownAlgorithm is returned when the algorithm name is not supported.
	ErrUnknownAlgorithm = errors.New("unknown cipher algorithm")

	// ErrBadCiphertext is returned by Final when the accumulated ciphertext
	// cannot be decrypted: truncated blocks or invalid padding.
	ErrBadCiphertext = errors.New("malformed ciphertext")
)

// Encrypter accumulates plaintext and emits ciphertext. Update may return a
// partial output; Final returns the remainder (including any padding).
type Encrypter interface {
	Update(p []byte) []byte
	Final() ([]byte, error)
}

// Decrypter is the inverse of Encrypter. Final fails with ErrBadCiphertext
// when the input was not produced by the matching Encrypter parameters.
type Decrypter interface {
	Update(p []byte) []byte
	Final() ([]byte, error)
}

// algorithm describes one supported cipher configuration.
type algorithm struct {
	keySize int
	padded  bool // CBC needs PKCS#7 padding, CTR does not
}

var algorithms = map[string]algorithm{
	"aes-128-cbc": {keySize: 16, padded: true},
	"aes-192-cbc": {keySize: 24, padded: true},
	"aes-256-cbc": {keySize: 32, padded: true},
	"aes-256-ctr": {keySize: 32, padded: false},
}

// KeySize reports the key length in bytes required by the named algorithm.
func KeySize(name string) (int, error) {
	alg, ok := algorithms[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg.keySize, nil
}

// NewEncrypter returns a streaming encrypter for the named algorithm.
// The key must be exactly the algorithm's key size and the IV must be one
// cipher block long.
func NewEncrypter(name string, key, iv []byte) (Encrypter, error) {
	block, alg, err := newBlock(name, key, iv)
	if err != nil {
		return nil, err
	}
	if !alg.padded {
		return &ctrStream{stream: cipher.NewCTR(block, iv)}, nil
	}
	return &cbcEncrypter{mode: cipher.NewCBCEncrypter(block, iv)}, nil
}

// NewDecrypter returns a streaming decrypter for the named algorithm,
// with the same key and IV requirements as NewEncrypter.
func NewDecrypter(name string, key, iv []byte) (Decrypter, error) {
	block, alg, err := newBlock(name, key, iv)
	if err != nil {
		return nil, err
	}
	if !alg.padded {
		return &ctrStream{stream: cipher.NewCTR(block, iv)}, nil
	}
	return &cbcDecrypter{mode: cipher.NewCBCDecrypter(block, iv)}, nil
}

func newBlock(name string, key, iv []byte) (cipher.Block, algorithm, error) {
	alg, ok := algorithms[name]
	if !ok {
		return nil, algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	if len(key) != alg.keySize {
		return nil, algorithm{}, fmt.Errorf(
			"cipher %s requires a %d-byte key, got %d bytes", name, alg.keySize, len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, algorithm{}, fmt.Errorf(
			"cipher %s requires a %d-byte iv, got %d bytes", name, aes.BlockSize, len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, algorithm{}, fmt.Errorf("failed to initialize %s: %w", name, err)
	}
	return block, alg, nil
}

// cbcEncrypter encrypts full blocks as they accumulate and pads the tail on
// Final.
type cbcEncrypter struct {
	mode cipher.BlockMode
	buf  []byte
}

func (e *cbcEncrypter) Update(p []byte) []byte {
	e.buf = append(e.buf, p...)
	n := len(e.buf) / aes.BlockSize * aes.BlockSize
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	e.mode.CryptBlocks(out, e.buf[:n])
	e.buf = append(e.buf[:0], e.buf[n:]...)
	return out
}

func (e *cbcEncrypter) Final() ([]byte, error) {
	padded := pkcs7Pad(e.buf, aes.BlockSize)
	out := make([]byte, len(padded))
	e.mode.CryptBlocks(out, padded)
	e.buf = nil
	return out, nil
}

// cbcDecrypter decrypts full blocks as they accumulate, always withholding the
// final block until Final so its padding can be verified and stripped.
type cbcDecrypter struct {
	mode cipher.BlockMode
	buf  []byte
}

func (d *cbcDecrypter) Update(p []byte) []byte {
	d.buf = append(d.buf, p...)
	if len(d.buf) <= aes.BlockSize {
		return nil
	}
	// Keep at least one full block buffered; it may be the padded tail.
	n := (len(d.buf) - 1) / aes.BlockSize * aes.BlockSize
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	d.mode.CryptBlocks(out, d.buf[:n])
	d.buf = append(d.buf[:0], d.buf[n:]...)
	return out
}

func (d *cbcDecrypter) Final() ([]byte, error) {
	if len(d.buf) != aes.BlockSize {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrBadCiphertext)
	}
	out := make([]byte, aes.BlockSize)
	d.mode.CryptBlocks(out, d.buf)
	d.buf = nil
	return pkcs7Unpad(out, aes.BlockSize)
}

// ctrStream serves both directions: CTR mode XORs a keystream, so encryption
// and decryption are the same operation and no padding is involved.
type ctrStream struct {
	stream cipher.Stream
}

func (c *ctrStream) Update(p []byte) []byte {
	out := make([]byte, len(p))
	c.stream.XORKeyStream(out, p)
	return out
}

func (c *ctrStream) Final() ([]byte, error) {
	return nil, nil
}

func pkcs7Pad(p []byte, blockSize int) []byte {
	n := blockSize - len(p)%blockSize
	out := make([]byte, len(p)+n)
	copy(out, p)
	for i := len(p); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func pkcs7Unpad(p []byte, blockSize int) ([]byte, error) {
	if len(p) == 0 || len(p)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad padded length %d", ErrBadCiphertext, len(p))
	}
	n := int(p[len(p)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: invalid padding", ErrBadCiphertext)
	}
	for _, b := range p[len(p)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrBadCiphertext)
		}
	}
	return p[:len(p)-n], nil
}

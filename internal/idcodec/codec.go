// Package idcodec converts integer record identifiers into opaque, URL-safe
// tokens and back. Tokens are the symmetric encryption of the identifier's
// decimal representation, base64-encoded and then percent-encoded for
// transport in URLs and headers.
//
// The scheme carries no integrity tag: a corrupted or adversarially modified
// token may decrypt without error into a different integer. That is accepted
// by design — every lookup downstream is scoped by the requesting user, so a
// forged identifier resolves to "not found" rather than to someone else's
// record.
package idcodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/taskin/taskin-api/internal/config"
	"github.com/taskin/taskin-api/internal/platform/crypto"
)

// ErrInvalidToken is returned when a token cannot be decoded back into an
// identifier: bad percent-encoding, bad base64, ciphertext that does not
// decrypt cleanly, or plaintext that is not a base-10 integer. It maps to a
// client error at the boundary, never a crash.
var ErrInvalidToken = errors.New("invalid identifier token")

// Codec encodes and decodes identifiers under a fixed (algorithm, key, IV)
// triple. The configuration is resolved once at construction; a Codec is a
// pure function of its inputs afterwards and safe for concurrent use.
type Codec struct {
	algorithm string
	key       []byte
	iv        []byte
}

// New builds a Codec from the encryption configuration. It fails when any of
// algorithm, key or IV is missing, when the algorithm is unknown, or when the
// key is shorter than the algorithm's key size. A key longer than required is
// truncated to the first keySize bytes.
func New(cfg config.EncryptionConfig) (*Codec, error) {
	if cfg.Algorithm == "" || cfg.Key == "" || cfg.IV == "" {
		return nil, fmt.Errorf(
			"encryption configuration incomplete: algorithm, key and iv are all required")
	}

	keySize, err := crypto.KeySize(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if len(cfg.Key) < keySize {
		return nil, fmt.Errorf(
			"encryption key too short: %s needs at least %d bytes, got %d",
			cfg.Algorithm, keySize, len(cfg.Key))
	}

	c := &Codec{
		algorithm: cfg.Algorithm,
		key:       []byte(cfg.Key)[:keySize],
		iv:        []byte(cfg.IV),
	}

	// Probe the cipher once so a bad IV length surfaces at startup instead of
	// on the first request.
	if _, err := c.Encode(0); err != nil {
		return nil, err
	}

	return c, nil
}

// Encode encrypts the decimal representation of id and returns the resulting
// token. Encoding is deterministic for a fixed configuration: the same id
// always yields the same token.
func (c *Codec) Encode(id int64) (string, error) {
	enc, err := crypto.NewEncrypter(c.algorithm, c.key, c.iv)
	if err != nil {
		return "", err
	}

	out := enc.Update([]byte(strconv.FormatInt(id, 10)))
	tail, err := enc.Final()
	if err != nil {
		return "", err
	}

	token := base64.StdEncoding.EncodeToString(append(out, tail...))
	return url.QueryEscape(token), nil
}

// Decode reverses Encode. Every malformed-token shape is reported as
// ErrInvalidToken; a token that decrypts cleanly to an integer that no longer
// maps to a record is the caller's concern.
func (c *Codec) Decode(token string) (int64, error) {
	unescaped, err := url.QueryUnescape(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	dec, err := crypto.NewDecrypter(c.algorithm, c.key, c.iv)
	if err != nil {
		return 0, err
	}

	plain := dec.Update(ciphertext)
	tail, err := dec.Final()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(string(append(plain, tail...)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: plaintext is not an integer", ErrInvalidToken)
	}

	return id, nil
}

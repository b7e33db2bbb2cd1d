package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// SHA256 returns the hex-encoded SHA-256 digest of a string.
func SHA256(input string) string {
	return SHA256Bytes([]byte(input))
}

// SHA256Bytes returns the hex-encoded SHA-256 digest of a byte slice.
func SHA256Bytes(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// SHA256Reader consumes the reader and returns the hex-encoded SHA-256
// digest of everything read.
func SHA256Reader(reader io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

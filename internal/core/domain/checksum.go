package domain

import (
	"crypto/sha256"
	"encoding/hex"

	"go.trai.ch/zerr"
)

// ChecksumSize is the length of a Checksum in bytes.
const ChecksumSize = sha256.Size

// Checksum is the SHA-256 digest of a program's raw bytes. It is the key under
// which the compiled module is cached.
type Checksum [ChecksumSize]byte

// GenerateChecksum computes the checksum of the given program bytes.
func GenerateChecksum(code []byte) Checksum {
	return sha256.Sum256(code)
}

// ParseChecksum parses the lowercase or uppercase hex form of a checksum.
func ParseChecksum(s string) (Checksum, error) {
	var c Checksum
	if len(s) != 2*ChecksumSize {
		return c, zerr.With(zerr.Wrap(ErrInvalidChecksum, ""), "length", len(s))
	}
	if _, err := hex.Decode(c[:], []byte(s)); err != nil {
		return Checksum{}, zerr.Wrap(ErrInvalidChecksum, "")
	}
	return c, nil
}

// Hex returns the lowercase hex encoding used as the cache file name.
func (c Checksum) Hex() string {
	return hex.EncodeToString(c[:])
}

// String implements fmt.Stringer.
func (c Checksum) String() string {
	return c.Hex()
}

package booking

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	ReferencePrefix = "PL"
	referenceSpace  = 100000
)

var referencePattern = regexp.MustCompile(`^PL[0-9]{5}$`)

type Reference string

func (r Reference) String() string {
	return string(r)
}

// NewReference draws PL plus five uniformly distributed digits from src.
// A nil src uses crypto/rand.
func NewReference(src io.Reader) (Reference, error) {
	if src == nil {
		src = rand.Reader
	}
	// largest multiple of referenceSpace below 2^32, for rejection sampling
	const limit = (1 << 32) / referenceSpace * referenceSpace

	var buf [4]byte
	for {
		if _, err := io.ReadFull(src, buf[:]); err != nil {
			return "", fmt.Errorf("read reference entropy: %w", err)
		}
		n := binary.BigEndian.Uint32(buf[:])
		if n < limit {
			return Reference(fmt.Sprintf("%s%05d", ReferencePrefix, n%referenceSpace)), nil
		}
	}
}

func ParseReference(s string) (Reference, error) {
	ref := strings.ToUpper(strings.TrimSpace(s))
	if !referencePattern.MatchString(ref) {
		return "", ErrInvalidReference
	}
	return Reference(ref), nil
}

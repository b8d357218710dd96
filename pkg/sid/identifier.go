package sid

import (
	"fmt"
	"strconv"
)

// EncodedLen is the length of the canonical textual identifier form.
const EncodedLen = 24

const (
	maxMachine = 0xFFFFFF
	maxCounter = 0xFFFFFF
)

// Identifier is an immutable session identifier embedding its creation
// provenance. Machine and Counter carry 24 significant bits each.
type Identifier struct {
	Time    uint32 // unix seconds at minting
	Machine uint32 // 24-bit host fingerprint
	Process uint16 // minting process id
	Counter uint32 // 24-bit wrap-around disambiguator
}

// Format renders the canonical 24-character lowercase hex form, each field
// zero-padded to its width. It fails with ErrFieldOverflow when Machine or
// Counter carry more than 24 bits.
func (id Identifier) Format() (string, error) {
	if id.Machine > maxMachine || id.Counter > maxCounter {
		return "", ErrFieldOverflow
	}
	return fmt.Sprintf("%08x%06x%04x%06x", id.Time, id.Machine, id.Process, id.Counter), nil
}

// String implements fmt.Stringer. Identifiers produced by Parse or a Signer
// never overflow; an overflowing hand-built identifier renders empty.
func (id Identifier) String() string {
	s, _ := id.Format()
	return s
}

// Parse decodes the canonical textual form. It fails with
// ErrMalformedIdentifier when the input is not exactly 24 hex characters.
func Parse(value string) (Identifier, error) {
	if len(value) != EncodedLen {
		return Identifier{}, ErrMalformedIdentifier
	}

	fields := [4]uint64{}
	for i, seg := range [4]string{value[:8], value[8:14], value[14:18], value[18:]} {
		n, err := strconv.ParseUint(seg, 16, 32)
		if err != nil {
			return Identifier{}, ErrMalformedIdentifier
		}
		fields[i] = n
	}

	return Identifier{
		Time:    uint32(fields[0]),
		Machine: uint32(fields[1]),
		Process: uint16(fields[2]),
		Counter: uint32(fields[3]),
	}, nil
}

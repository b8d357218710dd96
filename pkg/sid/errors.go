package sid

import "errors"

var (
	// ErrMalformedIdentifier indicates identifier text of the wrong length
	// or containing non-hex segments
	ErrMalformedIdentifier = errors.New("sid: malformed identifier")

	// ErrFieldOverflow indicates an identifier field exceeds its encodable width
	ErrFieldOverflow = errors.New("sid: field exceeds encodable width")

	// ErrInvalidLength indicates a signed token of the wrong length
	ErrInvalidLength = errors.New("sid: invalid signed identifier length")

	// ErrExpiredIdentifier indicates a signed token older than the configured expiry
	ErrExpiredIdentifier = errors.New("sid: signed identifier expired")

	// ErrInvalidSignature indicates a signature mismatch
	ErrInvalidSignature = errors.New("sid: signature mismatch")
)

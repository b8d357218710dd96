package sid

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"os"
	"sync"
	"time"
)

// SignedLen is the length of the signed wire form: the 24-character
// identifier followed by the 64-character hex signature.
const SignedLen = 88

// defaultCounter is shared by every Signer in the process unless WithCounter
// overrides it, so concurrent signers never mint colliding counter values.
var defaultCounter = NewCounter()

// Signer mints and validates signed session identifiers for a single secret.
type Signer struct {
	secret       []byte
	machine      uint32
	process      uint16
	counter      *Counter
	expiresAfter time.Duration
	now          func() time.Time
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithExpiry sets the maximum accepted age of a presented token, measured
// from the timestamp embedded in the identifier.
func WithExpiry(d time.Duration) SignerOption {
	return func(s *Signer) {
		s.expiresAfter = d
	}
}

// WithCounter replaces the process-wide counter.
func WithCounter(c *Counter) SignerOption {
	return func(s *Signer) {
		s.counter = c
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// NewSigner builds a Signer around the given secret. The machine fingerprint
// and process id are captured once at construction.
func NewSigner(secret []byte, opts ...SignerOption) *Signer {
	s := &Signer{
		secret:  append([]byte(nil), secret...),
		machine: machineID(),
		process: uint16(os.Getpid() & 0xFFFF),
		counter: defaultCounter,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Generate mints a fresh signed identifier from the current second and the
// signer's provenance fields.
func (s *Signer) Generate() *SignedIdentifier {
	return &SignedIdentifier{
		Identifier: Identifier{
			Time:    uint32(s.now().Unix()),
			Machine: s.machine,
			Process: s.process,
			Counter: s.counter.Next(),
		},
		secret: s.secret,
	}
}

// Parse validates a presented wire token. Checks run in a fixed order: length
// (ErrInvalidLength), embedded-timestamp expiry when configured
// (ErrExpiredIdentifier), then a constant-time signature comparison
// (ErrInvalidSignature). A malformed identifier portion fails with
// ErrMalformedIdentifier.
func (s *Signer) Parse(token string) (*SignedIdentifier, error) {
	if len(token) != SignedLen {
		return nil, ErrInvalidLength
	}

	id, err := Parse(token[:EncodedLen])
	if err != nil {
		return nil, err
	}

	if s.expiresAfter > 0 && s.now().Sub(time.Unix(int64(id.Time), 0)) > s.expiresAfter {
		return nil, ErrExpiredIdentifier
	}

	challenge := signature(s.secret, id)
	if subtle.ConstantTimeCompare([]byte(challenge), []byte(token[EncodedLen:])) != 1 {
		return nil, ErrInvalidSignature
	}

	signed := &SignedIdentifier{Identifier: id, secret: s.secret}
	signed.once.Do(func() { signed.sig = challenge })
	return signed, nil
}

// ExpiresAfter reports the configured token lifetime, zero when unset.
func (s *Signer) ExpiresAfter() time.Duration {
	return s.expiresAfter
}

// SignedIdentifier pairs an Identifier with its HMAC-SHA256 signature. It is
// never mutated after construction and must not be copied once in use.
type SignedIdentifier struct {
	Identifier

	secret []byte
	once   sync.Once
	sig    string
}

// Signature returns the hex signature over the canonical identifier form.
// The identifier is immutable, so the signature is computed at most once and
// cached.
func (s *SignedIdentifier) Signature() string {
	s.once.Do(func() {
		s.sig = signature(s.secret, s.Identifier)
	})
	return s.sig
}

// Signed returns the 88-character wire form.
func (s *SignedIdentifier) Signed() string {
	return s.Identifier.String() + s.Signature()
}

func signature(secret []byte, id Identifier) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// machineID derives a stable 24-bit fingerprint of the host from its
// hostname. Stability within one host matters here, not uniqueness across
// the fleet.
func machineID() uint32 {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	sum := sha256.Sum256([]byte(host))
	return uint32(sum[0])<<16 | uint32(sum[1])<<8 | uint32(sum[2])
}

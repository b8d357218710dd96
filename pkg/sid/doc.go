// Package sid implements signed, self-describing session identifiers.
//
// An Identifier embeds its own provenance: the second it was minted, a
// 24-bit machine fingerprint, the minting process id and a wrap-around
// counter value that disambiguates identifiers minted within the same second
// by the same process. The canonical textual form is 24 lowercase hex
// characters and round-trips exactly through Parse and Format.
//
// A Signer wraps identifiers with an HMAC-SHA256 signature keyed by an
// opaque secret, producing an 88-character wire token (24 identifier
// characters followed by 64 signature characters). Verification compares
// signatures in constant time and optionally enforces a maximum age derived
// from the embedded timestamp.
//
// # Usage
//
//	signer := sid.NewSigner([]byte("secret"), sid.WithExpiry(24*time.Hour))
//
//	id := signer.Generate()
//	token := id.Signed() // 88 chars, safe to hand to a client
//
//	parsed, err := signer.Parse(token)
//	switch {
//	case errors.Is(err, sid.ErrExpiredIdentifier):
//	    // stale token, mint a new session
//	case errors.Is(err, sid.ErrInvalidSignature):
//	    // forged or corrupt token
//	}
//
// Tokens are tamper-evident, not encrypted: the identifier portion is
// readable by anyone. Do not embed data that must stay private.
package sid

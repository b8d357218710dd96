package sid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrow/web.session/pkg/sid"
)

func TestSignerGenerate(t *testing.T) {
	t.Parallel()

	signer := sid.NewSigner([]byte("test-secret"))

	id := signer.Generate()
	token := id.Signed()

	assert.Len(t, token, sid.SignedLen)
	assert.Equal(t, id.Identifier.String(), token[:sid.EncodedLen])
	assert.Len(t, id.Signature(), 64)

	// The signature is cached after first use.
	assert.Equal(t, id.Signature(), id.Signature())
	assert.Equal(t, token, id.Signed())
}

func TestSignerParse(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	t.Run("accepts own tokens", func(t *testing.T) {
		t.Parallel()

		signer := sid.NewSigner(secret)
		minted := signer.Generate()

		parsed, err := signer.Parse(minted.Signed())
		require.NoError(t, err)
		assert.Equal(t, minted.Identifier, parsed.Identifier)
		assert.Equal(t, minted.Signed(), parsed.Signed())
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		t.Parallel()

		token := sid.NewSigner(secret).Generate().Signed()

		_, err := sid.NewSigner([]byte("other-secret")).Parse(token)
		assert.ErrorIs(t, err, sid.ErrInvalidSignature)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		t.Parallel()

		signer := sid.NewSigner(secret)
		token := signer.Generate().Signed()

		_, err := signer.Parse(token[:sid.SignedLen-1])
		assert.ErrorIs(t, err, sid.ErrInvalidLength)

		_, err = signer.Parse(token + "0")
		assert.ErrorIs(t, err, sid.ErrInvalidLength)

		_, err = signer.Parse("")
		assert.ErrorIs(t, err, sid.ErrInvalidLength)
	})

	t.Run("rejects malformed identifier portion", func(t *testing.T) {
		t.Parallel()

		signer := sid.NewSigner(secret)
		token := signer.Generate().Signed()

		_, err := signer.Parse("zz" + token[2:])
		assert.ErrorIs(t, err, sid.ErrMalformedIdentifier)
	})
}

func TestSignerExpiry(t *testing.T) {
	t.Parallel()

	const lifetime = time.Hour

	now := time.Unix(1_700_000_000, 0)
	signer := sid.NewSigner([]byte("test-secret"),
		sid.WithExpiry(lifetime),
		sid.WithClock(func() time.Time { return now }),
	)

	token := signer.Generate().Signed()

	// One second before the boundary the token still validates.
	now = now.Add(lifetime - time.Second)
	_, err := signer.Parse(token)
	require.NoError(t, err)

	// One second past the boundary it is expired.
	now = now.Add(2 * time.Second)
	_, err = signer.Parse(token)
	assert.ErrorIs(t, err, sid.ErrExpiredIdentifier)
}

func TestSignerTamperSensitivity(t *testing.T) {
	t.Parallel()

	signer := sid.NewSigner([]byte("test-secret"))
	token := signer.Generate().Signed()

	flip := func(c byte) byte {
		if c == 'f' {
			return '0'
		}
		return c + 1
	}

	for i := 0; i < len(token); i++ {
		mutated := token[:i] + string(flip(token[i])) + token[i+1:]
		if mutated == token {
			continue
		}

		_, err := signer.Parse(mutated)
		assert.Error(t, err, "flipping position %d must invalidate the token", i)
	}
}

func TestSignerCustomCounter(t *testing.T) {
	t.Parallel()

	counter := sid.NewCounter()
	signer := sid.NewSigner([]byte("test-secret"), sid.WithCounter(counter))

	a := signer.Generate()
	b := signer.Generate()
	assert.NotEqual(t, a.Counter, b.Counter)
	assert.NotEqual(t, a.Signed(), b.Signed())
}

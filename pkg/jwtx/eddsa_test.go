package jwtx

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newEdDSAPair(t *testing.T) (Signer, *EdDSAVerifier) {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := NewSignerEdDSA("ed-test-001", pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	verifier := NewVerifierEdDSA(signer.(*EdDSASigner).Public(), VerifyOptions{})
	return signer, verifier
}

func TestEdDSARoundTrip(t *testing.T) {
	t.Parallel()

	signer, verifier := newEdDSAPair(t)

	claims, err := NewClaims("user-1", "alice", "bouncer", nil, time.Minute, time.Now().UTC())
	require.NoError(t, err)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, got.Subject)
	require.Equal(t, claims.Username, got.Username)
}

func TestEdDSARejectsForeignKey(t *testing.T) {
	t.Parallel()

	signer, _ := newEdDSAPair(t)
	_, otherVerifier := newEdDSAPair(t)

	claims, err := NewClaims("user-1", "alice", "", nil, time.Minute, time.Now().UTC())
	require.NoError(t, err)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = otherVerifier.Verify(token)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestEdDSARejectsHS256Token(t *testing.T) {
	t.Parallel()

	// Algorithm confusion: a symmetric token must never pass an EdDSA verifier.
	hsSigner, err := NewSignerHS256("k", testSecret)
	require.NoError(t, err)

	claims, err := NewClaims("user-1", "alice", "", nil, time.Minute, time.Now().UTC())
	require.NoError(t, err)

	token, err := hsSigner.Sign(claims)
	require.NoError(t, err)

	_, verifier := newEdDSAPair(t)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestEdDSASignerRejectsBadPEM(t *testing.T) {
	t.Parallel()

	_, err := NewSignerEdDSA("k", []byte("not a pem"))
	require.Error(t, err)
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aussiebroadwan/bouncer/pkg/cryptox"
	"github.com/aussiebroadwan/bouncer/pkg/jwtx"
)

// InitTokenKeys builds the signer/verifier pair for the configured
// algorithm. One key per process: rotation means restarting with a new key
// and accepting that outstanding tokens die with the old one.
//
// Supported algorithms:
//   - "EdDSA" (default): Ed25519 keypair loaded from SigningKeyFile. The
//     key is generated and written on first startup, so tokens survive
//     restarts.
//   - "HS256": shared secret from BOUNCER_HS256_SECRET. Useful when another
//     service needs to verify tokens with the same secret.
func InitTokenKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	opts := jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Leeway:   cfg.ClockSkew,
	}

	switch strings.ToUpper(cfg.Algorithm) {
	case "HS256":
		if cfg.HS256Secret == "" {
			return nil, nil, errors.New("BOUNCER_HS256_SECRET is required for HS256")
		}

		signer, err := jwtx.NewSignerHS256("primary", []byte(cfg.HS256Secret))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize HS256 signer: %w", err)
		}

		logger.Info("token signing configured", "algorithm", signer.Alg())
		return signer, jwtx.NewVerifierHS256([]byte(cfg.HS256Secret), opts), nil

	case "EDDSA":
		pemKey, err := loadOrGenerateSigningKey(cfg.SigningKeyFile, logger)
		if err != nil {
			return nil, nil, err
		}

		signer, err := jwtx.NewSignerEdDSA("primary", pemKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize EdDSA signer: %w", err)
		}

		edSigner, ok := signer.(*jwtx.EdDSASigner)
		if !ok {
			return nil, nil, errors.New("unexpected EdDSA signer type")
		}

		logger.Info("token signing configured", "algorithm", signer.Alg(), "key_file", cfg.SigningKeyFile)
		return signer, jwtx.NewVerifierEdDSA(edSigner.Public(), opts), nil

	default:
		return nil, nil, fmt.Errorf("unsupported signing algorithm %q (want HS256 or EdDSA)", cfg.Algorithm)
	}
}

// loadOrGenerateSigningKey reads the Ed25519 PEM key at path, generating and
// persisting a fresh one on first startup.
func loadOrGenerateSigningKey(path string, logger *slog.Logger) ([]byte, error) {
	pemKey, err := os.ReadFile(path)
	if err == nil {
		return pemKey, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	pemKey, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist signing key: %w", err)
	}

	logger.Info("generated new Ed25519 signing key", "path", path)
	return pemKey, nil
}

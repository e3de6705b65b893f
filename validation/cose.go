package validation

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/veraison/go-cose"
)

// parsePublicKeyPEM decodes a PEM-encoded ECDSA public key as exported by
// the engine's signing key manager.
func parsePublicKeyPEM(publicKeyPEM string) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in public key")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	publicKey, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, expected *ecdsa.PublicKey", parsed)
	}
	return publicKey, nil
}

// VerifyRecordSignature verifies the COSE_Sign1 signature of a selection
// record against the engine's PEM-encoded public key.
func VerifyRecordSignature(coseBytes []byte, publicKeyPEM string) error {
	publicKey, err := parsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return err
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, publicKey)
	if err != nil {
		return fmt.Errorf("create COSE verifier: %w", err)
	}

	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(coseBytes); err != nil {
		return fmt.Errorf("parse COSE message: %w", err)
	}

	if err := msg.Verify(nil, verifier); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

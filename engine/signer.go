package engine

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/veraison/go-cose"
)

// SigningKeyManager manages the engine's ECDSA key pair for selection records
type SigningKeyManager struct {
	privateKey *ecdsa.PrivateKey // Keep private - sensitive!
	PublicKey  *ecdsa.PublicKey
}

// NewSigningKeyManager creates a new SigningKeyManager and generates a fresh
// ECDSA P-256 key pair.
func NewSigningKeyManager() (*SigningKeyManager, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ECDSA key pair: %w", err)
	}

	return &SigningKeyManager{
		privateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}, nil
}

// PublicKeyPEM returns the public key in PEM format. Hosts distribute this to
// anyone who needs to validate exported selection records offline.
func (km *SigningKeyManager) PublicKeyPEM() (string, error) {
	// Marshal public key to PKIX format
	derBytes, err := x509.MarshalPKIXPublicKey(km.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	// Encode to PEM
	pemBlock := &pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: derBytes,
	}

	return string(pem.EncodeToMemory(pemBlock)), nil
}

// signPayload wraps the payload in a COSE_Sign1 message signed with ES256 and
// returns the raw CBOR bytes.
func (km *SigningKeyManager) signPayload(payload []byte) ([]byte, error) {
	signer, err := cose.NewSigner(cose.AlgorithmES256, km.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create COSE signer: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	msg.Payload = payload

	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("failed to sign record payload: %w", err)
	}

	coseBytes, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal COSE message: %w", err)
	}
	return coseBytes, nil
}

// Package service provides audit event signing.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// Signer signs and verifies audit events.
type Signer interface {
	// Sign generates the HMAC-SHA256 signature for the event content.
	Sign(event *auditDomain.Event) ([]byte, error)

	// Verify checks the event's stored signature against its content.
	// Returns ErrSignatureInvalid if the event was tampered with.
	Verify(event *auditDomain.Event) error
}

type eventSigner struct {
	masterSecret *cryptoDomain.MasterSecret
}

// NewSigner creates an HMAC-based audit event signer. The signing key is
// derived from the master secret with HKDF-SHA256 so encryption key usage
// and signing key usage stay separated.
func NewSigner(masterSecret *cryptoDomain.MasterSecret) Signer {
	return &eventSigner{masterSecret: masterSecret}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key.
// Info parameter: "audit-event-signing-v1" (versioned for future algorithm changes).
func (s *eventSigner) deriveSigningKey() ([]byte, error) {
	info := []byte("audit-event-signing-v1")
	kdf := hkdf.New(sha256.New, s.masterSecret.Bytes(), nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalize converts an event to a canonical byte representation.
// Format: id || type || session_id || metadata || created_at, with
// length-prefixed encoding for variable-length fields to prevent ambiguity.
func (s *eventSigner) canonicalize(event *auditDomain.Event) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, event.ID[:]...)
	buf = appendLengthPrefixed(buf, []byte(string(event.Type)))
	buf = appendLengthPrefixed(buf, []byte(event.SessionID))

	if event.Metadata != nil {
		metadataBytes, err := json.Marshal(event.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadataBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(event.CreatedAt.UnixNano()))
	buf = append(buf, timeBytes...)

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates the HMAC-SHA256 signature for the event.
func (s *eventSigner) Sign(event *auditDomain.Event) ([]byte, error) {
	signingKey, err := s.deriveSigningKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer cryptoDomain.Zero(signingKey)

	canonical, err := s.canonicalize(event)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize event: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks the event's stored signature against its content.
func (s *eventSigner) Verify(event *auditDomain.Event) error {
	expected, err := s.Sign(event)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(event.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}

	return nil
}

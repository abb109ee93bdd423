package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// versionPattern matches version numbers inside user agent strings.
var versionPattern = regexp.MustCompile(`\d+\.\d+`)

// AnonymizerService implements Anonymizer with salted SHA-256
// pseudonymization. Anonymization is irreversible: direct identifiers are
// dropped, not encrypted, and only a hash of the original record survives
// for audit correlation.
type AnonymizerService struct {
	hasher Hasher
	salt   string
}

// NewAnonymizer creates an AnonymizerService. The salt is fixed per
// deployment so pseudonyms stay stable across records.
func NewAnonymizer(hasher Hasher, salt string) *AnonymizerService {
	return &AnonymizerService{hasher: hasher, salt: salt}
}

// HashIP pseudonymizes an IP address with a salted hash.
func (a *AnonymizerService) HashIP(ip string) string {
	return a.hasher.Hash(ip, a.salt)
}

// HashSession pseudonymizes a session id with a salted hash. The same
// session always maps to the same pseudonym within a deployment.
func (a *AnonymizerService) HashSession(sessionID string) string {
	return a.hasher.Hash(sessionID, a.salt)
}

// SanitizeUserAgent masks version numbers in a user agent string, removing
// the fingerprinting surface while keeping the product family readable.
func (a *AnonymizerService) SanitizeUserAgent(userAgent string) string {
	return versionPattern.ReplaceAllString(userAgent, "X.X")
}

// AnonymizePII strips direct identifiers (name, email, phone, national id,
// address), pseudonymizes the session id, and stamps the result with
// anonymization metadata including a hash of the original record.
func (a *AnonymizerService) AnonymizePII(
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.AnonymizedRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: missing record", cryptoDomain.ErrAnonymization)
	}

	original, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrAnonymization, err)
	}

	anonymized := &cryptoDomain.AnonymizedRecord{
		Age: record.Age,
		Metadata: cryptoDomain.AnonymizationMetadata{
			Anonymized:       true,
			AnonymizedAt:     time.Now().UTC(),
			OriginalDataHash: a.hasher.Hash(string(original), a.salt),
		},
	}

	if record.SessionID != "" {
		anonymized.SessionID = a.HashSession(record.SessionID)
	}

	return anonymized, nil
}

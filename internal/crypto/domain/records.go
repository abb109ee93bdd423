package domain

import (
	"time"
)

// PIIRecord is the typed schema for directly identifying personal data.
// Sensitive fields are fixed at compile time; there is no runtime
// field-name matching.
type PIIRecord struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Address    string `json:"address,omitempty"`

	// Non-sensitive fields travel in cleartext.
	Age       int    `json:"age,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// EncryptedPIIRecord mirrors PIIRecord with every sensitive field replaced
// by an EncryptedPayload. A nil payload means the source field was empty.
type EncryptedPIIRecord struct {
	Name       *EncryptedPayload `json:"name,omitempty"`
	Email      *EncryptedPayload `json:"email,omitempty"`
	Phone      *EncryptedPayload `json:"phone,omitempty"`
	NationalID *EncryptedPayload `json:"national_id,omitempty"`
	Address    *EncryptedPayload `json:"address,omitempty"`

	Age       int    `json:"age,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// MedicalRecord is the typed schema for health data. Multi-valued fields
// are JSON-encoded before encryption so the ciphertext round-trips exactly.
type MedicalRecord struct {
	Symptoms    string   `json:"symptoms,omitempty"`
	Diagnosis   string   `json:"diagnosis,omitempty"`
	Treatment   string   `json:"treatment,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	History     string   `json:"history,omitempty"`
	TestResults string   `json:"test_results,omitempty"`

	// PatientRef is a pseudonymous reference, not a direct identifier.
	PatientRef string `json:"patient_ref,omitempty"`
}

// EncryptedMedicalRecord mirrors MedicalRecord with encrypted fields and the
// protection metadata block that travels with the record for audit purposes.
type EncryptedMedicalRecord struct {
	Symptoms    *EncryptedPayload `json:"symptoms,omitempty"`
	Diagnosis   *EncryptedPayload `json:"diagnosis,omitempty"`
	Treatment   *EncryptedPayload `json:"treatment,omitempty"`
	Medications *EncryptedPayload `json:"medications,omitempty"`
	Allergies   *EncryptedPayload `json:"allergies,omitempty"`
	History     *EncryptedPayload `json:"history,omitempty"`
	TestResults *EncryptedPayload `json:"test_results,omitempty"`

	PatientRef string `json:"patient_ref,omitempty"`

	Protection ProtectionMetadata `json:"_medical_data_protection"`
}

// ProtectionMetadata documents the protection applied to a medical record.
type ProtectionMetadata struct {
	Encrypted           bool      `json:"encrypted"`
	EncryptedAt         time.Time `json:"encrypted_at"`
	ProtectionLevel     string    `json:"protection_level"`
	ComplianceStandards []string  `json:"compliance_standards"`
}

// EnhancedProtection is the metadata block stamped on encrypted medical records.
func EnhancedProtection(now time.Time) ProtectionMetadata {
	return ProtectionMetadata{
		Encrypted:           true,
		EncryptedAt:         now,
		ProtectionLevel:     "ENHANCED",
		ComplianceStandards: []string{"LGPD", "CFM"},
	}
}

// AnonymizationMetadata documents an anonymization pass over a record.
type AnonymizationMetadata struct {
	Anonymized       bool      `json:"anonymized"`
	AnonymizedAt     time.Time `json:"anonymized_at"`
	OriginalDataHash string    `json:"original_data_hash"`
}

// AnonymizedRecord is a PIIRecord with direct identifiers removed and
// indirect identifiers pseudonymized.
type AnonymizedRecord struct {
	SessionID string `json:"session_id,omitempty"`
	Age       int    `json:"age,omitempty"`

	Metadata AnonymizationMetadata `json:"_anonymization"`
}

// Package domain defines the consent models for LGPD processing: closed
// consent/purpose/legal-basis enums, the consent record with its validity
// invariant, and the user-rights summary returned with every grant.
package domain

import (
	"time"
)

// ConsentType classifies what the user is consenting to.
type ConsentType string

const (
	ConsentDataProcessing ConsentType = "data_processing"
	ConsentMedicalData    ConsentType = "medical_data"
	ConsentMarketing      ConsentType = "marketing"
	ConsentAnalytics      ConsentType = "analytics"
	ConsentCookies        ConsentType = "cookies"
)

// Valid reports whether the consent type is a known value.
func (c ConsentType) Valid() bool {
	switch c {
	case ConsentDataProcessing, ConsentMedicalData, ConsentMarketing,
		ConsentAnalytics, ConsentCookies:
		return true
	}
	return false
}

// Purpose is the processing purpose being authorized.
type Purpose string

const (
	PurposeChatbotInteraction Purpose = "chatbot_interaction"
	PurposeAppointmentBooking Purpose = "appointment_booking"
	PurposeMedicalReferral    Purpose = "medical_referral"
	PurposeCustomerSupport    Purpose = "customer_support"
	PurposeMarketing          Purpose = "marketing"
	PurposeAnalytics          Purpose = "analytics"
	PurposeSystemImprovement  Purpose = "system_improvement"
)

// Valid reports whether the purpose is a known value.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeChatbotInteraction, PurposeAppointmentBooking,
		PurposeMedicalReferral, PurposeCustomerSupport, PurposeMarketing,
		PurposeAnalytics, PurposeSystemImprovement:
		return true
	}
	return false
}

// LegalBasis is the LGPD-recognized justification for processing. Consent
// is one of several bases, not the only one.
type LegalBasis string

const (
	BasisConsent            LegalBasis = "consent"
	BasisLegitimateInterest LegalBasis = "legitimate_interest"
	BasisVitalInterest      LegalBasis = "vital_interest"
	BasisPublicInterest     LegalBasis = "public_interest"
	BasisContract           LegalBasis = "contract"
	BasisLegalObligation    LegalBasis = "legal_obligation"
)

// Action is a downstream instruction returned to the caller.
type Action string

const (
	ActionRequestInitialConsent Action = "REQUEST_INITIAL_CONSENT"
	ActionRequestRenewedConsent Action = "REQUEST_RENEWED_CONSENT"
	ActionRequestConsent        Action = "REQUEST_CONSENT"
	ActionStopProcessing        Action = "STOP_PROCESSING"
	ActionNotifySystems         Action = "NOTIFY_SYSTEMS"
)

// ConsentStatus is the state of the per-type consent machine.
type ConsentStatus string

const (
	StatusNoConsent   ConsentStatus = "no_consent"
	StatusGranted     ConsentStatus = "granted"
	StatusExpired     ConsentStatus = "expired"
	StatusRevoked     ConsentStatus = "revoked"
	StatusNotRequired ConsentStatus = "not_required"
)

// nonConsentBases maps purposes that are processed without consent to
// their legal basis. Purposes absent from this map require consent.
var nonConsentBases = map[Purpose]LegalBasis{
	PurposeChatbotInteraction: BasisLegitimateInterest,
	PurposeAppointmentBooking: BasisContract,
	PurposeMedicalReferral:    BasisVitalInterest,
	PurposeCustomerSupport:    BasisLegitimateInterest,
}

// ConsentRequired reports whether processing for the purpose needs an
// explicit consent record. Marketing, analytics, and system improvement
// always do; operational purposes rest on another legal basis.
func ConsentRequired(purpose Purpose) bool {
	_, exempt := nonConsentBases[purpose]
	return !exempt
}

// NonConsentBasis returns the legal basis authorizing a purpose without
// consent. The second return is false for consent-required purposes.
func NonConsentBasis(purpose Purpose) (LegalBasis, bool) {
	basis, ok := nonConsentBases[purpose]
	return basis, ok
}

// Consent validity windows in days. Medical consent outlives the rest
// because clinical data carries a five-year legal retention minimum.
const (
	medicalConsentDays   = 1825
	marketingConsentDays = 730
	defaultConsentDays   = 365
)

// ExpirationFor computes when a consent of the given type expires.
func ExpirationFor(consentType ConsentType, now time.Time) time.Time {
	switch consentType {
	case ConsentMedicalData:
		return now.AddDate(0, 0, medicalConsentDays)
	case ConsentMarketing:
		return now.AddDate(0, 0, marketingConsentDays)
	default:
		return now.AddDate(0, 0, defaultConsentDays)
	}
}

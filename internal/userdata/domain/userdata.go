// Package domain defines the stored user-data item: the unit the
// retention scheduler deletes and rights requests export, rectify, and
// erase. Sensitive content arrives already encrypted as a payload JSON
// blob; this package never sees plaintext.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies stored user data for retention purposes.
type Category string

const (
	CategoryConversation Category = "conversation_data"
	CategoryPersonal     Category = "personal_data"
	CategoryMedical      Category = "medical_data"
)

// Valid reports whether the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryConversation, CategoryPersonal, CategoryMedical:
		return true
	}
	return false
}

// Item is one stored piece of user data. Content holds the serialized
// (usually encrypted) payload; the store treats it as opaque bytes.
type Item struct {
	ID        uuid.UUID
	SessionID string
	Category  Category
	Content   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentType classifies a vault document. The type decides which extracted
// field carries the consequential deadline for the reminder scheduler.
type DocumentType string

const (
	DocTypePassport           DocumentType = "passport"
	DocTypeResidencePermit    DocumentType = "residence_permit"
	DocTypeRentalContract     DocumentType = "rental_contract"
	DocTypeEmploymentContract DocumentType = "employment_contract"
	DocTypeInsurance          DocumentType = "insurance_documents"
	DocTypeOther              DocumentType = "other"
)

// Document is one stored vault file. Bytes live in object storage under
// StoragePath; this row only carries metadata. Deletion is soft: a deleted
// document keeps its row and bytes until the cleanup worker purges it.
type Document struct {
	ID              string            `gorm:"primaryKey" json:"id"`
	UserID          string            `gorm:"not null;index" json:"userId"`
	FileName        string            `gorm:"not null" json:"fileName"`
	StoragePath     string            `gorm:"not null" json:"-"`
	MimeType        string            `json:"mimeType"`
	SizeBytes       int64             `json:"sizeBytes"`
	DocumentType    DocumentType      `json:"documentType,omitempty"`
	ExtractedFields datatypes.JSONMap `gorm:"type:jsonb" json:"extractedFields,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
}

// StringFields flattens ExtractedFields to the string-valued entries the
// deadline resolver understands. Nulls and non-string values are dropped.
func (d *Document) StringFields() map[string]string {
	if len(d.ExtractedFields) == 0 {
		return nil
	}
	out := make(map[string]string, len(d.ExtractedFields))
	for k, v := range d.ExtractedFields {
		if s, ok := v.(string); ok && s != "" {
			out[k] = s
		}
	}
	return out
}

package entities

// ExtractedFields holds the OCR summary fields of one receipt as raw
// label -> text pairs. Labels arrive with arbitrary casing, spacing and
// punctuation; nothing here is normalized.
type ExtractedFields map[string]string

// Receipt is keyed by (owner, receipt id). Every query against this
// table must filter by OwnerID; ReceiptID alone is never a valid key.
type Receipt struct {
	OwnerID         string          `gorm:"primaryKey" json:"owner_id"`
	ReceiptID       string          `gorm:"primaryKey" json:"receipt_id"`
	StoragePath     string          `json:"storage_path"`
	StoredFilename  string          `json:"stored_filename"`
	Status          string          `json:"status"` // pending, approved, rejected
	UploadDatetime  string          `gorm:"index" json:"upload_datetime"` // ISO-8601, filtered by string prefix
	SizeBytes       int64           `json:"size_bytes"`
	ExtractedFields ExtractedFields `gorm:"type:text;serializer:json" json:"extracted_fields"`

	Timestamp
}

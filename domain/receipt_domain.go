package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessUploadReceipt    = "file uploaded and processed"
	MessageSuccessGetReceipts      = "receipts retrieved successfully"
	MessageSuccessGetReceiptDetail = "receipt details retrieved successfully"
	MessageSuccessUpdateReceipt    = "receipt updated successfully"
	MessageSuccessUpdateStatus     = "status updated"
	MessageSuccessDeleteReceipt    = "receipt deleted successfully"
	MessageSuccessTotalClaims      = "total claims calculated successfully"

	MessageFailedUploadReceipt    = "failed to upload receipt"
	MessageFailedGetReceipts      = "failed to retrieve receipts"
	MessageFailedGetReceiptDetail = "error retrieving receipt details"
	MessageFailedUpdateReceipt    = "error updating receipt details"
	MessageFailedUpdateStatus     = "failed to update status"
	MessageFailedDeleteReceipt    = "error deleting receipt"
	MessageFailedGetReceiptImage  = "error retrieving receipt image"
	MessageFailedTotalClaims      = "failed to calculate total claims"

	ErrReceiptNotFound      = errors.New("receipt not found")
	ErrReceiptImageNotFound = errors.New("receipt image not found")
	ErrMissingFile          = errors.New("no file provided")
	ErrNoUpdateFields       = errors.New("no valid fields to update")
	ErrInvalidYear          = errors.New("year query parameter is required")
)

type (
	UploadReceiptRequest struct {
		File *multipart.FileHeader `json:"file" form:"file" validate:"required"`
	}

	UploadReceiptResponse struct {
		ReceiptID        string            `json:"receipt_id"`
		S3Key            string            `json:"s3_key"`
		Extracted        map[string]string `json:"extracted"`
		ReceiptSize      int64             `json:"receipt_size"`
		OriginalFilename string            `json:"original_filename"`
		StoredFilename   string            `json:"stored_filename"`
		FilenameChanged  bool              `json:"filename_changed"`
		ClaimEstimate    float64           `json:"claim_estimate"`
	}

	ReceiptResponse struct {
		ReceiptID       string            `json:"receipt_id"`
		Filename        string            `json:"receipt_filename"`
		Status          string            `json:"receipt_status"`
		UploadDatetime  string            `json:"receipt_upload_datetime"`
		SizeBytes       int64             `json:"receipt_size"`
		ExtractedFields map[string]string `json:"extracted_fields"`
		ClaimEstimate   float64           `json:"claim_estimate"`
		ImageURL        string            `json:"image_url"`
	}

	UpdateReceiptRequest struct {
		Status          *string           `json:"receipt_status" validate:"omitempty"`
		ExtractedFields map[string]string `json:"extracted_fields" validate:"omitempty"`
	}

	UpdateReceiptResponse struct {
		ReceiptID     string            `json:"receipt_id"`
		Status        string            `json:"receipt_status"`
		UpdatedFields map[string]string `json:"extracted_fields"`
	}

	UpdateStatusRequest struct {
		ReceiptID string `json:"receipt_id" validate:"required"`
		NewStatus string `json:"new_status" validate:"required"`
	}

	ReceiptImage struct {
		Content     []byte
		ContentType string
		Filename    string
	}

	DeleteReceiptResponse struct {
		ReceiptID        string `json:"receipt_id"`
		DeletedS3Key     string `json:"deleted_s3_key"`
		DeletedFilename  string `json:"deleted_filename"`
		S3DeletionStatus string `json:"s3_deletion_status"` // completed, failed, skipped_no_path
	}

	TotalClaimsResponse struct {
		Year        int     `json:"year"`
		TotalClaims float64 `json:"total_claims"`
		NumReceipts int     `json:"num_receipts"`
	}
)

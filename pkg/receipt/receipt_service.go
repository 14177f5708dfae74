package receipt

import (
	"My-Tax-Tracker/domain"
	"My-Tax-Tracker/entities"
	"My-Tax-Tracker/internal/utils/ocr"
	"My-Tax-Tracker/internal/utils/storage"
	"My-Tax-Tracker/pkg/extraction"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, ownerID string) (domain.UploadReceiptResponse, error)
		GetReceipts(ctx context.Context, ownerID string, year, month, day int) ([]domain.ReceiptResponse, error)
		GetReceiptByID(ctx context.Context, ownerID, receiptID string) (domain.ReceiptResponse, error)
		UpdateReceipt(ctx context.Context, ownerID, receiptID string, req domain.UpdateReceiptRequest) (domain.UpdateReceiptResponse, error)
		UpdateStatus(ctx context.Context, ownerID string, req domain.UpdateStatusRequest) error
		GetReceiptImage(ctx context.Context, ownerID, receiptID string) (domain.ReceiptImage, error)
		DeleteReceipt(ctx context.Context, ownerID, receiptID string) (domain.DeleteReceiptResponse, error)
		TotalClaims(ctx context.Context, ownerID string, year int) (domain.TotalClaimsResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		s3                storage.AwsS3
		extractor         ocr.ExpenseExtractor
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, s3 storage.AwsS3, extractor ocr.ExpenseExtractor) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		s3:                s3,
		extractor:         extractor,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, ownerID string) (domain.UploadReceiptResponse, error) {
	storedFilename, err := ResolveFilename(ctx, s.receiptRepository, ownerID, req.File.Filename)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	objectKey := fmt.Sprintf("receipts/%s/%s", ownerID, storedFilename)
	if err := s.s3.UploadFile(ctx, objectKey, req.File, storage.AllowReceipt...); err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	extracted, err := s.extractor.AnalyzeReceipt(ctx, objectKey)
	if err != nil {
		_ = s.s3.DeleteFile(ctx, objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	receipt := &entities.Receipt{
		OwnerID:         ownerID,
		ReceiptID:       uuid.New().String(),
		StoragePath:     objectKey,
		StoredFilename:  storedFilename,
		Status:          "pending",
		UploadDatetime:  time.Now().Format(time.RFC3339),
		SizeBytes:       req.File.Size,
		ExtractedFields: extracted,
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		_ = s.s3.DeleteFile(ctx, objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	return domain.UploadReceiptResponse{
		ReceiptID:        receipt.ReceiptID,
		S3Key:            objectKey,
		Extracted:        extracted,
		ReceiptSize:      receipt.SizeBytes,
		OriginalFilename: req.File.Filename,
		StoredFilename:   storedFilename,
		FilenameChanged:  req.File.Filename != storedFilename,
		ClaimEstimate:    extraction.SubstringPriorityMatch(extracted),
	}, nil
}

func (s *receiptService) GetReceipts(ctx context.Context, ownerID string, year, month, day int) ([]domain.ReceiptResponse, error) {
	receipts, err := s.receiptRepository.GetReceiptsByOwner(ctx, ownerID, datePrefix(year, month, day))
	if err != nil {
		return nil, err
	}

	response := make([]domain.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		response = append(response, toReceiptResponse(r))
	}
	return response, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, ownerID, receiptID string) (domain.ReceiptResponse, error) {
	receipt, err := s.getOwned(ctx, ownerID, receiptID)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}
	return toReceiptResponse(receipt), nil
}

func (s *receiptService) UpdateReceipt(ctx context.Context, ownerID, receiptID string, req domain.UpdateReceiptRequest) (domain.UpdateReceiptResponse, error) {
	if req.Status == nil && req.ExtractedFields == nil {
		return domain.UpdateReceiptResponse{}, domain.ErrNoUpdateFields
	}

	receipt, err := s.getOwned(ctx, ownerID, receiptID)
	if err != nil {
		return domain.UpdateReceiptResponse{}, err
	}

	if req.Status != nil {
		receipt.Status = *req.Status
	}
	if req.ExtractedFields != nil {
		receipt.ExtractedFields = req.ExtractedFields
	}

	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		return domain.UpdateReceiptResponse{}, err
	}

	return domain.UpdateReceiptResponse{
		ReceiptID:     receipt.ReceiptID,
		Status:        receipt.Status,
		UpdatedFields: receipt.ExtractedFields,
	}, nil
}

func (s *receiptService) UpdateStatus(ctx context.Context, ownerID string, req domain.UpdateStatusRequest) error {
	receipt, err := s.getOwned(ctx, ownerID, req.ReceiptID)
	if err != nil {
		return err
	}

	receipt.Status = req.NewStatus
	return s.receiptRepository.UpdateReceipt(ctx, receipt)
}

func (s *receiptService) GetReceiptImage(ctx context.Context, ownerID, receiptID string) (domain.ReceiptImage, error) {
	receipt, err := s.getOwned(ctx, ownerID, receiptID)
	if err != nil {
		return domain.ReceiptImage{}, err
	}

	if receipt.StoragePath == "" {
		return domain.ReceiptImage{}, domain.ErrReceiptImageNotFound
	}

	content, err := s.s3.GetFile(ctx, receipt.StoragePath)
	if err != nil {
		return domain.ReceiptImage{}, err
	}

	return domain.ReceiptImage{
		Content:     content,
		ContentType: imageContentType(receipt.StoredFilename),
		Filename:    receipt.StoredFilename,
	}, nil
}

// DeleteReceipt is best-effort on object storage and authoritative on
// metadata: a failed S3 delete is logged and reported in the response,
// while the metadata row is removed regardless.
func (s *receiptService) DeleteReceipt(ctx context.Context, ownerID, receiptID string) (domain.DeleteReceiptResponse, error) {
	receipt, err := s.getOwned(ctx, ownerID, receiptID)
	if err != nil {
		return domain.DeleteReceiptResponse{}, err
	}

	response := domain.DeleteReceiptResponse{
		ReceiptID:        receiptID,
		DeletedFilename:  receipt.StoredFilename,
		S3DeletionStatus: "skipped_no_path",
	}

	if receipt.StoragePath != "" {
		if err := s.s3.DeleteFile(ctx, receipt.StoragePath); err != nil {
			log.Printf("error deleting S3 object %s: %v", receipt.StoragePath, err)
			response.S3DeletionStatus = "failed"
		} else {
			response.DeletedS3Key = receipt.StoragePath
			response.S3DeletionStatus = "completed"
		}
	}

	if err := s.receiptRepository.DeleteReceipt(ctx, ownerID, receiptID); err != nil {
		return domain.DeleteReceiptResponse{}, err
	}
	return response, nil
}

// TotalClaims sums the owner's receipts for one calendar year. The year
// filter is a plain string-prefix test on the upload timestamp. Values
// are matched with the exact-key policy and accumulated as decimals;
// a receipt whose matched value fails to parse is skipped with a
// warning but still counts toward num_receipts.
func (s *receiptService) TotalClaims(ctx context.Context, ownerID string, year int) (domain.TotalClaimsResponse, error) {
	receipts, err := s.receiptRepository.GetReceiptsByOwner(ctx, ownerID, "")
	if err != nil {
		return domain.TotalClaimsResponse{}, err
	}

	total := decimal.Zero
	numReceipts := 0
	yearPrefix := strconv.Itoa(year)

	for _, r := range receipts {
		if !strings.HasPrefix(r.UploadDatetime, yearPrefix) {
			continue
		}
		numReceipts++

		raw, found := extraction.ExactKeyAfterStrip(r.ExtractedFields)
		if !found {
			continue
		}

		claim, err := extraction.ParseClaim(raw)
		if err != nil {
			log.Printf("could not convert %q to a claim for receipt %s, skipping", raw, r.ReceiptID)
			continue
		}
		total = total.Add(claim)
	}

	totalClaims, _ := total.Round(2).Float64()
	return domain.TotalClaimsResponse{
		Year:        year,
		TotalClaims: totalClaims,
		NumReceipts: numReceipts,
	}, nil
}

func (s *receiptService) getOwned(ctx context.Context, ownerID, receiptID string) (*entities.Receipt, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, ownerID, receiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}
	return receipt, nil
}

func toReceiptResponse(r *entities.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ReceiptID:       r.ReceiptID,
		Filename:        r.StoredFilename,
		Status:          r.Status,
		UploadDatetime:  r.UploadDatetime,
		SizeBytes:       r.SizeBytes,
		ExtractedFields: r.ExtractedFields,
		ClaimEstimate:   extraction.SubstringPriorityMatch(r.ExtractedFields),
		ImageURL:        fmt.Sprintf("/receipts/image/%s", r.ReceiptID),
	}
}

func datePrefix(year, month, day int) string {
	switch {
	case year > 0 && month > 0 && day > 0:
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case year > 0 && month > 0:
		return fmt.Sprintf("%04d-%02d", year, month)
	case year > 0:
		return fmt.Sprintf("%04d", year)
	default:
		return ""
	}
}

func imageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

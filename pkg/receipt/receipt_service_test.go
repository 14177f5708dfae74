package receipt

import (
	"My-Tax-Tracker/domain"
	"My-Tax-Tracker/entities"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the object, runs extraction and persists metadata", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		s3 := newFakeStorage()
		extractor := &fakeExtractor{fields: map[string]string{"TOTAL": "45.00"}}
		service := NewReceiptService(repo, s3, extractor)

		res, err := service.UploadReceipt(ctx, domain.UploadReceiptRequest{
			File: newFileHeader(t, "invoice.pdf", "receipt bytes"),
		}, "alice")
		require.NoError(t, err)

		assert.Equal(t, "receipts/alice/invoice.pdf", res.S3Key)
		assert.Equal(t, "invoice.pdf", res.StoredFilename)
		assert.False(t, res.FilenameChanged)
		assert.Equal(t, map[string]string{"TOTAL": "45.00"}, res.Extracted)
		assert.Equal(t, 45.00, res.ClaimEstimate)
		assert.Equal(t, int64(len("receipt bytes")), res.ReceiptSize)
		assert.Contains(t, s3.objects, "receipts/alice/invoice.pdf")

		stored, err := repo.GetReceiptByID(ctx, "alice", res.ReceiptID)
		require.NoError(t, err)
		assert.Equal(t, "pending", stored.Status)
		assert.Equal(t, entities.ExtractedFields{"TOTAL": "45.00"}, stored.ExtractedFields)
	})

	t.Run("deconflicts a repeated filename", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		s3 := newFakeStorage()
		service := NewReceiptService(repo, s3, &fakeExtractor{fields: map[string]string{}})

		first, err := service.UploadReceipt(ctx, domain.UploadReceiptRequest{
			File: newFileHeader(t, "invoice.pdf", "one"),
		}, "alice")
		require.NoError(t, err)
		assert.False(t, first.FilenameChanged)

		second, err := service.UploadReceipt(ctx, domain.UploadReceiptRequest{
			File: newFileHeader(t, "invoice.pdf", "two"),
		}, "alice")
		require.NoError(t, err)
		assert.Equal(t, "invoice(1).pdf", second.StoredFilename)
		assert.True(t, second.FilenameChanged)
	})

	t.Run("removes the uploaded object when extraction fails", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		s3 := newFakeStorage()
		service := NewReceiptService(repo, s3, &fakeExtractor{err: errors.New("textract unavailable")})

		_, err := service.UploadReceipt(ctx, domain.UploadReceiptRequest{
			File: newFileHeader(t, "invoice.pdf", "bytes"),
		}, "alice")
		require.Error(t, err)
		assert.Empty(t, s3.objects)
	})
}

func TestGetReceipts(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (ReceiptService, ReceiptRepository) {
		repo := NewReceiptRepository(setupTestDB(t))
		return NewReceiptService(repo, newFakeStorage(), &fakeExtractor{}), repo
	}

	seed := func(t *testing.T, repo ReceiptRepository, id, uploadDatetime string) {
		require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
			OwnerID:        "alice",
			ReceiptID:      id,
			StoredFilename: id + ".pdf",
			Status:         "pending",
			UploadDatetime: uploadDatetime,
		}))
	}

	t.Run("sorts newest first", func(t *testing.T) {
		service, repo := newService(t)
		seed(t, repo, "older", "2024-02-01T09:00:00Z")
		seed(t, repo, "newer", "2024-05-01T09:00:00Z")

		res, err := service.GetReceipts(ctx, "alice", 0, 0, 0)
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "newer", res[0].ReceiptID)
		assert.Equal(t, "older", res[1].ReceiptID)
	})

	t.Run("filters by zero padded date prefix", func(t *testing.T) {
		service, repo := newService(t)
		seed(t, repo, "march", "2024-03-15T09:00:00Z")
		seed(t, repo, "may", "2024-05-01T09:00:00Z")

		res, err := service.GetReceipts(ctx, "alice", 2024, 3, 0)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "march", res[0].ReceiptID)
	})

	t.Run("never returns another owner's receipts", func(t *testing.T) {
		service, repo := newService(t)
		seed(t, repo, "mine", "2024-03-15T09:00:00Z")

		res, err := service.GetReceipts(ctx, "bob", 0, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewReceiptRepository(setupTestDB(t))
	service := NewReceiptService(repo, newFakeStorage(), &fakeExtractor{})

	require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
		OwnerID:        "alice",
		ReceiptID:      "receipt-x",
		StoredFilename: "invoice.pdf",
		Status:         "pending",
		UploadDatetime: "2024-01-01T10:00:00Z",
	}))

	_, err := service.GetReceiptByID(ctx, "bob", "receipt-x")
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)

	_, err = service.DeleteReceipt(ctx, "bob", "receipt-x")
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)

	err = service.UpdateStatus(ctx, "bob", domain.UpdateStatusRequest{ReceiptID: "receipt-x", NewStatus: "approved"})
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)

	// The owner still sees it untouched.
	got, err := service.GetReceiptByID(ctx, "alice", "receipt-x")
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "/receipts/image/receipt-x", got.ImageURL)
}

func TestUpdateReceipt(t *testing.T) {
	ctx := context.Background()
	repo := NewReceiptRepository(setupTestDB(t))
	service := NewReceiptService(repo, newFakeStorage(), &fakeExtractor{})

	require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
		OwnerID:        "alice",
		ReceiptID:      "r1",
		StoredFilename: "invoice.pdf",
		Status:         "pending",
		UploadDatetime: "2024-01-01T10:00:00Z",
	}))

	t.Run("rejects an empty update", func(t *testing.T) {
		_, err := service.UpdateReceipt(ctx, "alice", "r1", domain.UpdateReceiptRequest{})
		assert.ErrorIs(t, err, domain.ErrNoUpdateFields)
	})

	t.Run("updates only the provided fields", func(t *testing.T) {
		status := "approved"
		res, err := service.UpdateReceipt(ctx, "alice", "r1", domain.UpdateReceiptRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "approved", res.Status)

		fields := map[string]string{"TOTAL": "12.00"}
		res, err = service.UpdateReceipt(ctx, "alice", "r1", domain.UpdateReceiptRequest{ExtractedFields: fields})
		require.NoError(t, err)
		assert.Equal(t, "approved", res.Status)
		assert.Equal(t, fields, res.UpdatedFields)
	})
}

func TestDeleteReceipt(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo ReceiptRepository, storagePath string) {
		require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
			OwnerID:        "alice",
			ReceiptID:      "r1",
			StoragePath:    storagePath,
			StoredFilename: "invoice.pdf",
			Status:         "pending",
			UploadDatetime: "2024-01-01T10:00:00Z",
		}))
	}

	t.Run("deletes object and metadata", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		s3 := newFakeStorage()
		s3.objects["receipts/alice/invoice.pdf"] = []byte("bytes")
		service := NewReceiptService(repo, s3, &fakeExtractor{})
		seed(t, repo, "receipts/alice/invoice.pdf")

		res, err := service.DeleteReceipt(ctx, "alice", "r1")
		require.NoError(t, err)
		assert.Equal(t, "completed", res.S3DeletionStatus)
		assert.Equal(t, "receipts/alice/invoice.pdf", res.DeletedS3Key)
		assert.Empty(t, s3.objects)

		_, err = repo.GetReceiptByID(ctx, "alice", "r1")
		assert.Error(t, err)
	})

	t.Run("metadata delete proceeds when storage delete fails", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		s3 := newFakeStorage()
		s3.deleteErr = errors.New("s3 unavailable")
		service := NewReceiptService(repo, s3, &fakeExtractor{})
		seed(t, repo, "receipts/alice/invoice.pdf")

		res, err := service.DeleteReceipt(ctx, "alice", "r1")
		require.NoError(t, err)
		assert.Equal(t, "failed", res.S3DeletionStatus)

		_, err = repo.GetReceiptByID(ctx, "alice", "r1")
		assert.Error(t, err)
	})

	t.Run("skips storage when the receipt has no path", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		service := NewReceiptService(repo, newFakeStorage(), &fakeExtractor{})
		seed(t, repo, "")

		res, err := service.DeleteReceipt(ctx, "alice", "r1")
		require.NoError(t, err)
		assert.Equal(t, "skipped_no_path", res.S3DeletionStatus)
	})
}

func TestGetReceiptImage(t *testing.T) {
	ctx := context.Background()
	repo := NewReceiptRepository(setupTestDB(t))
	s3 := newFakeStorage()
	s3.objects["receipts/alice/photo.png"] = []byte("png bytes")
	service := NewReceiptService(repo, s3, &fakeExtractor{})

	require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
		OwnerID:        "alice",
		ReceiptID:      "r1",
		StoragePath:    "receipts/alice/photo.png",
		StoredFilename: "photo.png",
		Status:         "pending",
		UploadDatetime: "2024-01-01T10:00:00Z",
	}))
	require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
		OwnerID:        "alice",
		ReceiptID:      "r2",
		StoredFilename: "orphan.jpg",
		Status:         "pending",
		UploadDatetime: "2024-01-01T10:00:00Z",
	}))

	image, err := service.GetReceiptImage(ctx, "alice", "r1")
	require.NoError(t, err)
	assert.Equal(t, "image/png", image.ContentType)
	assert.Equal(t, []byte("png bytes"), image.Content)
	assert.Equal(t, "photo.png", image.Filename)

	_, err = service.GetReceiptImage(ctx, "alice", "r2")
	assert.ErrorIs(t, err, domain.ErrReceiptImageNotFound)
}

func TestTotalClaims(t *testing.T) {
	ctx := context.Background()
	repo := NewReceiptRepository(setupTestDB(t))
	service := NewReceiptService(repo, newFakeStorage(), &fakeExtractor{})

	seed := func(id, uploadDatetime string, fields entities.ExtractedFields) {
		require.NoError(t, repo.CreateReceipt(ctx, &entities.Receipt{
			OwnerID:         "alice",
			ReceiptID:       id,
			StoredFilename:  id + ".pdf",
			Status:          "pending",
			UploadDatetime:  uploadDatetime,
			ExtractedFields: fields,
		}))
	}

	seed("parsable", "2024-02-01T09:00:00Z", entities.ExtractedFields{"TOTAL": "100.00"})
	seed("unparsable", "2024-03-01T09:00:00Z", entities.ExtractedFields{"GRAND TOTAL": "N/A"})
	seed("no-total", "2024-04-01T09:00:00Z", entities.ExtractedFields{"Merchant": "Happy Mart"})
	seed("other-year", "2023-04-01T09:00:00Z", entities.ExtractedFields{"TOTAL": "999.00"})
	seed("formatted", "2024-06-01T09:00:00Z", entities.ExtractedFields{"Grand Total:": "$1,234.50"})

	res, err := service.TotalClaims(ctx, "alice", 2024)
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	// Parse failures and missing totals still count toward num_receipts.
	assert.Equal(t, 4, res.NumReceipts)
	assert.Equal(t, 1334.50, res.TotalClaims)
}

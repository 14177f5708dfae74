package receipt

import (
	"My-Tax-Tracker/entities"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReceipt(t *testing.T, repo ReceiptRepository, ownerID, receiptID, filename string) {
	t.Helper()
	require.NoError(t, repo.CreateReceipt(context.Background(), &entities.Receipt{
		OwnerID:        ownerID,
		ReceiptID:      receiptID,
		StoredFilename: filename,
		Status:         "pending",
		UploadDatetime: "2024-01-01T10:00:00Z",
	}))
}

func TestResolveFilename(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the original name when unused", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))

		name, err := ResolveFilename(ctx, repo, "alice", "invoice.pdf")
		require.NoError(t, err)
		assert.Equal(t, "invoice.pdf", name)
	})

	t.Run("appends counters until a free slot is found", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		seedReceipt(t, repo, "alice", "r1", "invoice.pdf")

		name, err := ResolveFilename(ctx, repo, "alice", "invoice.pdf")
		require.NoError(t, err)
		assert.Equal(t, "invoice(1).pdf", name)

		seedReceipt(t, repo, "alice", "r2", "invoice(1).pdf")

		name, err = ResolveFilename(ctx, repo, "alice", "invoice.pdf")
		require.NoError(t, err)
		assert.Equal(t, "invoice(2).pdf", name)
	})

	t.Run("namespaces are per owner", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		seedReceipt(t, repo, "alice", "r1", "invoice.pdf")

		name, err := ResolveFilename(ctx, repo, "bob", "invoice.pdf")
		require.NoError(t, err)
		assert.Equal(t, "invoice.pdf", name)
	})

	t.Run("handles filenames without an extension", func(t *testing.T) {
		repo := NewReceiptRepository(setupTestDB(t))
		seedReceipt(t, repo, "alice", "r1", "receipt")

		name, err := ResolveFilename(ctx, repo, "alice", "receipt")
		require.NoError(t, err)
		assert.Equal(t, "receipt(1)", name)
	})
}

package receipt

import (
	"My-Tax-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptByID(ctx context.Context, ownerID, receiptID string) (*entities.Receipt, error)
		GetReceiptsByOwner(ctx context.Context, ownerID, datePrefix string) ([]*entities.Receipt, error)
		UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error
		DeleteReceipt(ctx context.Context, ownerID, receiptID string) error
		FilenameExists(ctx context.Context, ownerID, filename string) (bool, error)
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// GetReceiptByID filters by owner as well as id so one user can never
// address another user's receipt.
func (r *receiptRepository) GetReceiptByID(ctx context.Context, ownerID, receiptID string) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND receipt_id = ?", ownerID, receiptID).
		First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetReceiptsByOwner(ctx context.Context, ownerID, datePrefix string) ([]*entities.Receipt, error) {
	var receipts []*entities.Receipt

	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if datePrefix != "" {
		query = query.Where("upload_datetime LIKE ?", datePrefix+"%")
	}

	if err := query.Order("upload_datetime desc").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *receiptRepository) UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

func (r *receiptRepository) DeleteReceipt(ctx context.Context, ownerID, receiptID string) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND receipt_id = ?", ownerID, receiptID).
		Delete(&entities.Receipt{}).Error
}

func (r *receiptRepository) FilenameExists(ctx context.Context, ownerID, filename string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("owner_id = ? AND stored_filename = ?", ownerID, filename).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

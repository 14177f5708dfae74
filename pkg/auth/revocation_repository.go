package auth

import (
	"My-Tax-Tracker/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RevocationRepository interface {
		CreateRevocation(ctx context.Context, record *entities.RevokedToken) error
		GetRevocationsByTokenID(ctx context.Context, tokenID string) ([]*entities.RevokedToken, error)
	}

	revocationRepository struct {
		db *gorm.DB
	}
)

func NewRevocationRepository(db *gorm.DB) RevocationRepository {
	return &revocationRepository{db: db}
}

func (r *revocationRepository) CreateRevocation(ctx context.Context, record *entities.RevokedToken) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *revocationRepository) GetRevocationsByTokenID(ctx context.Context, tokenID string) ([]*entities.RevokedToken, error) {
	var records []*entities.RevokedToken
	if err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

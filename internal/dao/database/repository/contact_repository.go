package repository

import (
	"context"

	"caller_id_server/internal/model"
	"caller_id_server/pkg/constants"

	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates the gorm contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// FindByPhoneWithOwnerReports loads contacts by phone with owner and owner's reports.
func (r *contactRepository) FindByPhoneWithOwnerReports(ctx context.Context, phone string) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.SpamReports", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("spam_reports.id")
		}).
		Where("phone = ?", phone).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find contacts phone=%s", phone)
	}
	return contacts, nil
}

// ExistsForRequester checks the email visibility relation.
func (r *contactRepository) ExistsForRequester(ctx context.Context, targetID uint, phone string, requesterID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Contact{}).
		Where("user_id = ? AND phone = ?", targetID, phone).
		Where("user_id = ?", requesterID).
		Count(&count).Error
	if err != nil {
		return false, wrapDBErrorf(err, "check contact user_id=%d phone=%s requester=%d", targetID, phone, requesterID)
	}
	return count > 0, nil
}

// CreateMany inserts contacts in batches.
func (r *contactRepository) CreateMany(ctx context.Context, contacts []model.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(contacts, constants.BATCH_INSERT_SIZE).Error; err != nil {
		return wrapDBError(err, "create contacts")
	}
	return nil
}

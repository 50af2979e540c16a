package repository

import (
	"context"

	"caller_id_server/internal/model"
	"caller_id_server/pkg/constants"

	"gorm.io/gorm"
)

type spamReportRepository struct {
	db *gorm.DB
}

// NewSpamReportRepository creates the gorm spam report repository.
func NewSpamReportRepository(db *gorm.DB) SpamReportRepository {
	return &spamReportRepository{db: db}
}

// Create inserts one report.
func (r *spamReportRepository) Create(ctx context.Context, report *model.SpamReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return wrapDBErrorf(err, "create spam report phone=%s", report.Phone)
	}
	return nil
}

// CreateMany inserts reports in batches.
func (r *spamReportRepository) CreateMany(ctx context.Context, reports []model.SpamReport) error {
	if len(reports) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(reports, constants.BATCH_INSERT_SIZE).Error; err != nil {
		return wrapDBError(err, "create spam reports")
	}
	return nil
}

type phoneCount struct {
	Phone string
	Total int64
}

// CountByPhones groups reports by phone for the given numbers.
func (r *spamReportRepository) CountByPhones(ctx context.Context, phones []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(phones))
	if len(phones) == 0 {
		return counts, nil
	}
	var rows []phoneCount
	err := r.db.WithContext(ctx).
		Model(&model.SpamReport{}).
		Select("phone, COUNT(*) AS total").
		Where("phone IN ?", phones).
		Group("phone").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "count spam reports by phone")
	}
	for _, row := range rows {
		counts[row.Phone] = row.Total
	}
	return counts, nil
}

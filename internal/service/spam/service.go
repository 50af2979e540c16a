// Package spam records spam reports against phone numbers.
package spam

import (
	"context"
	"strings"

	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/dto/respond"
	"caller_id_server/internal/infrastructure/mq"
	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"

	"go.uber.org/zap"
)

// MsgPhoneRequired is returned for an empty phone.
const MsgPhoneRequired = "Phone number is required"

// Service implements service.SpamService.
type Service struct {
	repos     *repository.Repositories
	publisher mq.SpamEventPublisher
}

// NewSpamService creates the spam service. A nil publisher discards events.
func NewSpamService(repos *repository.Repositories, publisher mq.SpamEventPublisher) *Service {
	if publisher == nil {
		publisher = mq.NoopPublisher{}
	}
	return &Service{repos: repos, publisher: publisher}
}

// ReportSpam stores a report by reporterID against phone. Reports are not
// deduplicated: the same reporter may report the same number again.
// The event is published after the insert; a failed publish is only logged.
func (s *Service) ReportSpam(ctx context.Context, phone string, reporterID uint) (*respond.SpamReportRespond, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, MsgPhoneRequired)
	}

	report := &model.SpamReport{Phone: phone, ReportedByID: reporterID}
	if err := s.repos.SpamReport.Create(ctx, report); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}

	err := s.publisher.PublishSpamReported(ctx, mq.SpamReportedEvent{
		Type:         mq.EventSpamReported,
		ReportID:     report.ID,
		Phone:        report.Phone,
		ReportedByID: report.ReportedByID,
		CreatedAt:    report.CreatedAt,
	})
	if err != nil {
		zap.L().Warn("publish spam report event failed",
			zap.Uint("report_id", report.ID),
			zap.Error(err),
		)
	}

	res := respond.NewSpamReportRespond(report)
	return &res, nil
}

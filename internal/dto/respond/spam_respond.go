package respond

import (
	"time"

	"caller_id_server/internal/model"
)

// SpamReportRespond is a stored spam report.
type SpamReportRespond struct {
	ID           uint      `json:"id"`
	Phone        string    `json:"phone"`
	ReportedByID uint      `json:"reportedById"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSpamReportRespond converts the model.
func NewSpamReportRespond(r *model.SpamReport) SpamReportRespond {
	return SpamReportRespond{
		ID:           r.ID,
		Phone:        r.Phone,
		ReportedByID: r.ReportedByID,
		CreatedAt:    r.CreatedAt,
	}
}

// NewSpamReportList converts a slice, never returning nil so it encodes as [].
func NewSpamReportList(reports []model.SpamReport) []SpamReportRespond {
	out := make([]SpamReportRespond, 0, len(reports))
	for i := range reports {
		out = append(out, NewSpamReportRespond(&reports[i]))
	}
	return out
}

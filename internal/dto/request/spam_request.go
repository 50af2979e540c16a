package request

// ReportSpamRequest is the body of POST /api/v1/spam/report.
type ReportSpamRequest struct {
	Phone string `json:"phone"`
}

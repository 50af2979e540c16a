package handler

import (
	"caller_id_server/internal/dto/request"
	"caller_id_server/internal/service"

	"github.com/gin-gonic/gin"
)

// SpamHandler serves /api/v1/spam.
type SpamHandler struct {
	spamService service.SpamService
}

// NewSpamHandler creates the spam handler.
func NewSpamHandler(spamService service.SpamService) *SpamHandler {
	return &SpamHandler{spamService: spamService}
}

// Report POST /api/v1/spam/report
func (h *SpamHandler) Report(c *gin.Context) {
	var req request.ReportSpamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	reporterID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.spamService.ReportSpam(c.Request.Context(), req.Phone, reporterID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, report, "Spam report submitted")
}

package handler

import (
	"caller_id_server/internal/dto/request"
	"caller_id_server/internal/service"
	"caller_id_server/pkg/constants"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves /api/v1/search. All routes sit behind JWTAuth.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates the search handler.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// ByName GET /api/v1/search/name?query=
// The tier that matched is returned in X-Search-Tier.
func (h *SearchHandler) ByName(c *gin.Context) {
	var req request.NameSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	res, err := h.searchService.SearchByName(c.Request.Context(), req.Query)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header(constants.HeaderSearchTier, res.Tier)
	HandleSuccess(c, res.Results, "Search results by name")
}

// ByPhone GET /api/v1/search/phone?phone=
func (h *SearchHandler) ByPhone(c *gin.Context) {
	var req request.PhoneSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	results, err := h.searchService.SearchByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, results, "Search results by Phone number")
}

// PersonDetails GET /api/v1/search/person/details?userId=
func (h *SearchHandler) PersonDetails(c *gin.Context) {
	var req request.PersonDetailsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	details, err := h.searchService.SearchPersonDetails(c.Request.Context(), req.UserID, requesterID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, details, "Person details retrieved successfully")
}

package request

// Query parameters of the search endpoints. Presence is checked by the
// search service so the error messages stay the same for every caller.

// NameSearchRequest binds GET /api/v1/search/name?query=.
type NameSearchRequest struct {
	Query string `form:"query"`
}

// PhoneSearchRequest binds GET /api/v1/search/phone?phone=.
type PhoneSearchRequest struct {
	Phone string `form:"phone"`
}

// PersonDetailsRequest binds GET /api/v1/search/person/details?userId=.
type PersonDetailsRequest struct {
	UserID string `form:"userId"`
}

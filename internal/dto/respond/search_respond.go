package respond

// Search tiers reported in the X-Search-Tier header.
const (
	TierPrefix    = "prefix"
	TierSubstring = "substring"
)

// SearchResult is one row of a name or phone search.
// For registered users ID is the user id; for contacts it is the contact id
// and SpamReports are those filed by the contact's owner.
type SearchResult struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	Registered    bool                `json:"registered"`
	SpamReports   []SpamReportRespond `json:"spamReports"`
	ReportedCount int64               `json:"reportedCount"`
}

// NameSearchRespond pairs the results with the tier that produced them.
type NameSearchRespond struct {
	Tier    string
	Results []SearchResult
}

// PersonDetailsRespond is a registered user as seen by the requester.
// Email is null unless the requester holds the user as a contact.
type PersonDetailsRespond struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	Email         *string             `json:"email"`
	SpamReports   []SpamReportRespond `json:"spamReports"`
	ReportedCount int64               `json:"reportedCount"`
}

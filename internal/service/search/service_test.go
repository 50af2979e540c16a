package search

import (
	"context"
	"strconv"
	"testing"

	"caller_id_server/internal/dao/database/dbtest"
	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/dao/database/seed"
	"caller_id_server/internal/dto/respond"
	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"
)

func newSeededService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	repos, _ := dbtest.Open(t)
	if err := seed.Run(context.Background(), repos); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewSearchService(repos), repos
}

func userID(t *testing.T, repos *repository.Repositories, phone string) uint {
	t.Helper()
	u, err := repos.User.FindByPhone(context.Background(), phone)
	if err != nil {
		t.Fatalf("find %s: %v", phone, err)
	}
	return u.ID
}

func names(results []respond.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestSearchByNameRequiresQuery(t *testing.T) {
	s, _ := newSeededService(t)
	for _, q := range []string{"", "   "} {
		_, err := s.SearchByName(context.Background(), q)
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Fatalf("query %q: err = %v", q, err)
		}
	}
}

func TestSearchByNamePrefixTierWins(t *testing.T) {
	s, _ := newSeededService(t)

	// "jo" is also inside "Alice Johnson", but the prefix tier is not empty
	res, err := s.SearchByName(context.Background(), "jo")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if res.Tier != respond.TierPrefix {
		t.Fatalf("tier = %s", res.Tier)
	}
	if got := names(res.Results); len(got) != 1 || got[0] != "John Doe" {
		t.Fatalf("results = %v", got)
	}
	john := res.Results[0]
	if len(john.SpamReports) != 1 || john.SpamReports[0].Phone != "2222222222" {
		t.Fatalf("john's filed reports = %+v", john.SpamReports)
	}
	if john.ReportedCount != 1 {
		t.Fatalf("reports against john = %d", john.ReportedCount)
	}
}

func TestSearchByNameFallsBackToSubstring(t *testing.T) {
	s, _ := newSeededService(t)

	res, err := s.SearchByName(context.Background(), "SON")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if res.Tier != respond.TierSubstring {
		t.Fatalf("tier = %s", res.Tier)
	}
	if got := names(res.Results); len(got) != 1 || got[0] != "Alice Johnson" {
		t.Fatalf("results = %v", got)
	}
}

func TestSearchByNameNoMatch(t *testing.T) {
	s, _ := newSeededService(t)

	res, err := s.SearchByName(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if res.Results == nil || len(res.Results) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", res.Results)
	}
}

func TestSearchByPhoneRequiresPhone(t *testing.T) {
	s, _ := newSeededService(t)
	_, err := s.SearchByPhone(context.Background(), "")
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v", err)
	}
}

func TestSearchByPhoneRegisteredUserShortCircuits(t *testing.T) {
	s, repos := newSeededService(t)
	ctx := context.Background()

	// a contact with the same number must not show up next to the user
	alice := userID(t, repos, "3333333333")
	if err := repos.Contact.CreateMany(ctx, []model.Contact{{Name: "Johnny", Phone: "1111111111", UserID: &alice}}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	results, err := s.SearchByPhone(ctx, "1111111111")
	if err != nil {
		t.Fatalf("SearchByPhone: %v", err)
	}
	if len(results) != 1 || results[0].Name != "John Doe" || !results[0].Registered {
		t.Fatalf("results = %+v", results)
	}
}

func TestSearchByPhoneContactsCarryOwnerReports(t *testing.T) {
	s, repos := newSeededService(t)
	ctx := context.Background()

	// Bob filed a report, so his contacts show it; Alice filed none
	bob := userID(t, repos, "4444444444")
	alice := userID(t, repos, "3333333333")
	if err := repos.Contact.CreateMany(ctx, []model.Contact{
		{Name: "Chaz", Phone: "5555555555", UserID: &bob},
	}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	results, err := s.SearchByPhone(ctx, "5555555555")
	if err != nil {
		t.Fatalf("SearchByPhone: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Name != "Charlie" || results[0].Registered || len(results[0].SpamReports) != 0 {
		t.Fatalf("alice's contact = %+v (alice=%d)", results[0], alice)
	}
	if results[1].Name != "Chaz" || len(results[1].SpamReports) != 1 || results[1].SpamReports[0].Phone != "1010101010" {
		t.Fatalf("bob's contact = %+v", results[1])
	}
}

func TestSearchByPhoneOwnerlessContact(t *testing.T) {
	s, _ := newSeededService(t)

	results, err := s.SearchByPhone(context.Background(), "1010101010")
	if err != nil {
		t.Fatalf("SearchByPhone: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Heidi" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].SpamReports == nil || len(results[0].SpamReports) != 0 {
		t.Fatalf("ownerless contact reports = %#v", results[0].SpamReports)
	}
	if results[0].ReportedCount != 1 {
		t.Fatalf("reported count = %d", results[0].ReportedCount)
	}
}

func TestSearchByPhoneUnknownNumber(t *testing.T) {
	s, _ := newSeededService(t)
	results, err := s.SearchByPhone(context.Background(), "0000000000")
	if err != nil || len(results) != 0 {
		t.Fatalf("results=%+v err=%v", results, err)
	}
}

func TestSearchPersonDetailsValidation(t *testing.T) {
	s, _ := newSeededService(t)
	ctx := context.Background()

	for _, raw := range []string{"", "abc", "-1", "0"} {
		_, err := s.SearchPersonDetails(ctx, raw, 1)
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Fatalf("userId %q: err = %v", raw, err)
		}
	}
	_, err := s.SearchPersonDetails(ctx, "999999", 1)
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("unknown user: err = %v", err)
	}
}

func TestSearchPersonDetailsHidesEmailWithoutContact(t *testing.T) {
	s, repos := newSeededService(t)
	john := userID(t, repos, "1111111111")
	alice := userID(t, repos, "3333333333")

	details, err := s.SearchPersonDetails(context.Background(), strconv.Itoa(int(john)), alice)
	if err != nil {
		t.Fatalf("SearchPersonDetails: %v", err)
	}
	if details.Email != nil {
		t.Fatalf("email leaked: %q", *details.Email)
	}
	if details.Name != "John Doe" || details.ReportedCount != 1 || len(details.SpamReports) != 1 {
		t.Fatalf("details = %+v", details)
	}
}

func TestSearchPersonDetailsShowsEmailWhenRelationHolds(t *testing.T) {
	s, repos := newSeededService(t)
	ctx := context.Background()
	john := userID(t, repos, "1111111111")

	// the relation needs a contact row with user_id = john, phone = john's phone,
	// owned by the requester
	if err := repos.Contact.CreateMany(ctx, []model.Contact{{Name: "Me", Phone: "1111111111", UserID: &john}}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	details, err := s.SearchPersonDetails(ctx, strconv.Itoa(int(john)), john)
	if err != nil {
		t.Fatalf("SearchPersonDetails: %v", err)
	}
	if details.Email == nil || *details.Email != "john.unique@example.com" {
		t.Fatalf("email = %v", details.Email)
	}
}

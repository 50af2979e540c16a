package repository

import (
	"context"
	"strings"
	"testing"

	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepos(t *testing.T) (*Repositories, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Contact{}, &model.SpamReport{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepositories(db), db
}

func mustCreateUser(t *testing.T, repos *Repositories, name, phone string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Phone: phone, RawPassword: "password123"}
	if err := repos.User.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func uintPtr(v uint) *uint { return &v }

func TestUserCreateDuplicatePhone(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	mustCreateUser(t, repos, "John Doe", "1111111111")
	err := repos.User.Create(ctx, &model.User{Name: "Other", Phone: "1111111111", RawPassword: "x"})
	if !errorx.IsDuplicate(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestUserCreatePasswordTooLongIsInvalidParam(t *testing.T) {
	repos, _ := newTestRepos(t)
	err := repos.User.Create(context.Background(), &model.User{
		Name: "Long", Phone: "2020202020", RawPassword: strings.Repeat("ж", 37),
	})
	if got := errorx.GetCode(err); got != errorx.CodeInvalidParam {
		t.Fatalf("code = %d, want %d (%v)", got, errorx.CodeInvalidParam, err)
	}
}

func TestUserFindByPhoneNotFound(t *testing.T) {
	repos, _ := newTestRepos(t)
	_, err := repos.User.FindByPhone(context.Background(), "0000000000")
	if !errorx.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserPasswordIsHashedAtRest(t *testing.T) {
	repos, _ := newTestRepos(t)
	mustCreateUser(t, repos, "John Doe", "1111111111")

	stored, err := repos.User.FindByPhone(context.Background(), "1111111111")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Password == "password123" || !stored.CheckPassword("password123") {
		t.Fatalf("password not stored as a bcrypt hash: %q", stored.Password)
	}
}

func TestSearchByNamePrefixAndContains(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	mustCreateUser(t, repos, "Alice Johnson", "3333333333")
	mustCreateUser(t, repos, "alina Brown", "4444444444")
	mustCreateUser(t, repos, "Kalif Ali", "5555555555")

	prefix, err := repos.User.SearchByNamePrefix(ctx, "ALI")
	if err != nil {
		t.Fatalf("prefix: %v", err)
	}
	if len(prefix) != 2 || prefix[0].Name != "Alice Johnson" || prefix[1].Name != "alina Brown" {
		t.Fatalf("prefix results = %+v", prefix)
	}

	contains, err := repos.User.SearchByNameContains(ctx, "ali")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if len(contains) != 3 {
		t.Fatalf("contains results = %d, want 3", len(contains))
	}
}

func TestSearchByNameEscapesWildcards(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	mustCreateUser(t, repos, "John Doe", "1111111111")
	mustCreateUser(t, repos, "100% Legit", "2222222222")

	users, err := repos.User.SearchByNameContains(ctx, "%")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if len(users) != 1 || users[0].Name != "100% Legit" {
		t.Fatalf("wildcard should match literally, got %+v", users)
	}

	users, err = repos.User.SearchByNamePrefix(ctx, "_")
	if err != nil {
		t.Fatalf("prefix: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("underscore should match literally, got %+v", users)
	}
}

func TestFindByPhoneWithReportsLoadsFiledReports(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	john := mustCreateUser(t, repos, "John Doe", "1111111111")
	jane := mustCreateUser(t, repos, "Jane Smith", "2222222222")
	if err := repos.SpamReport.CreateMany(ctx, []model.SpamReport{
		{Phone: "9999999999", ReportedByID: john.ID},
		{Phone: "8888888888", ReportedByID: john.ID},
		{Phone: "1111111111", ReportedByID: jane.ID},
	}); err != nil {
		t.Fatalf("create reports: %v", err)
	}

	got, err := repos.User.FindByPhoneWithReports(ctx, "1111111111")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.SpamReports) != 2 {
		t.Fatalf("john filed 2 reports, got %d", len(got.SpamReports))
	}
	if got.SpamReports[0].Phone != "9999999999" {
		t.Fatalf("reports not ordered by id: %+v", got.SpamReports)
	}
}

func TestContactsByPhoneCarryOwnerReports(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	alice := mustCreateUser(t, repos, "Alice Johnson", "3333333333")
	bob := mustCreateUser(t, repos, "Bob Brown", "4444444444")
	if err := repos.SpamReport.Create(ctx, &model.SpamReport{Phone: "1010101010", ReportedByID: bob.ID}); err != nil {
		t.Fatalf("create report: %v", err)
	}
	if err := repos.Contact.CreateMany(ctx, []model.Contact{
		{Name: "Charlie", Phone: "5555555555", UserID: uintPtr(alice.ID)},
		{Name: "Chuck", Phone: "5555555555", UserID: uintPtr(bob.ID)},
		{Name: "Nobody", Phone: "5555555555"},
		{Name: "Other", Phone: "6666666666", UserID: uintPtr(alice.ID)},
	}); err != nil {
		t.Fatalf("create contacts: %v", err)
	}

	contacts, err := repos.Contact.FindByPhoneWithOwnerReports(ctx, "5555555555")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("want 3 contacts, got %d", len(contacts))
	}
	if contacts[0].User == nil || len(contacts[0].User.SpamReports) != 0 {
		t.Fatalf("alice filed no reports: %+v", contacts[0].User)
	}
	if contacts[1].User == nil || len(contacts[1].User.SpamReports) != 1 {
		t.Fatalf("bob filed one report: %+v", contacts[1].User)
	}
	if contacts[2].User != nil {
		t.Fatalf("ownerless contact should have no user: %+v", contacts[2].User)
	}
}

func TestExistsForRequester(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	alice := mustCreateUser(t, repos, "Alice Johnson", "3333333333")
	bob := mustCreateUser(t, repos, "Bob Brown", "4444444444")
	if err := repos.Contact.CreateMany(ctx, []model.Contact{
		{Name: "Me", Phone: "3333333333", UserID: uintPtr(alice.ID)},
	}); err != nil {
		t.Fatalf("create contacts: %v", err)
	}

	ok, err := repos.Contact.ExistsForRequester(ctx, alice.ID, alice.Phone, alice.ID)
	if err != nil || !ok {
		t.Fatalf("alice owns the matching row: ok=%v err=%v", ok, err)
	}
	ok, err = repos.Contact.ExistsForRequester(ctx, alice.ID, alice.Phone, bob.ID)
	if err != nil || ok {
		t.Fatalf("bob does not own it: ok=%v err=%v", ok, err)
	}
	ok, err = repos.Contact.ExistsForRequester(ctx, alice.ID, "0000000000", alice.ID)
	if err != nil || ok {
		t.Fatalf("phone must match: ok=%v err=%v", ok, err)
	}
}

func TestSpamReportsAreNotDeduplicated(t *testing.T) {
	repos, db := newTestRepos(t)
	ctx := context.Background()

	john := mustCreateUser(t, repos, "John Doe", "1111111111")
	for i := 0; i < 2; i++ {
		if err := repos.SpamReport.Create(ctx, &model.SpamReport{Phone: "7777777777", ReportedByID: john.ID}); err != nil {
			t.Fatalf("create report %d: %v", i, err)
		}
	}
	var rows int64
	if err := db.Model(&model.SpamReport{}).Where("phone = ?", "7777777777").Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 2 {
		t.Fatalf("want 2 rows, got %d", rows)
	}

	counts, err := repos.SpamReport.CountByPhones(ctx, []string{"7777777777", "1234567890"})
	if err != nil {
		t.Fatalf("count by phones: %v", err)
	}
	if counts["7777777777"] != 2 {
		t.Fatalf("count = %d", counts["7777777777"])
	}
	if _, ok := counts["1234567890"]; ok {
		t.Fatal("phones without reports should be absent")
	}
}

func TestTransactionRollsBack(t *testing.T) {
	repos, _ := newTestRepos(t)
	ctx := context.Background()

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.User.Create(ctx, &model.User{Name: "A", Phone: "1", RawPassword: "x"}); err != nil {
			return err
		}
		return tx.User.Create(ctx, &model.User{Name: "B", Phone: "1", RawPassword: "x"})
	})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := repos.User.FindByPhone(ctx, "1"); !errorx.IsNotFound(err) {
		t.Fatalf("first insert should be rolled back, got %v", err)
	}
}

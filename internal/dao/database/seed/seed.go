// Package seed loads the demo data set: four registered users, six contacts
// and three spam reports.
package seed

import (
	"context"
	"errors"

	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"

	"go.uber.org/zap"
)

// DemoPassword is the plaintext password of every seeded user.
const DemoPassword = "password123"

// ErrAlreadySeeded is returned when the first demo user already exists.
var ErrAlreadySeeded = errors.New("seed: demo data already present")

type demoUser struct {
	name  string
	phone string
	email string
}

var demoUsers = []demoUser{
	{"John Doe", "1111111111", "john.unique@example.com"},
	{"Jane Smith", "2222222222", "jane.unique@example.com"},
	{"Alice Johnson", "3333333333", "alice.unique@example.com"},
	{"Bob Brown", "4444444444", "bob.unique@example.com"},
}

// Run inserts the demo data in one transaction. It refuses to run twice.
func Run(ctx context.Context, repos *repository.Repositories) error {
	_, err := repos.User.FindByPhone(ctx, demoUsers[0].phone)
	if err == nil {
		return ErrAlreadySeeded
	}
	if !errorx.IsNotFound(err) {
		return err
	}

	return repos.Transaction(ctx, func(tx *repository.Repositories) error {
		users := make([]*model.User, 0, len(demoUsers))
		for _, d := range demoUsers {
			email := d.email
			u := &model.User{Name: d.name, Phone: d.phone, Email: &email, RawPassword: DemoPassword}
			if err := tx.User.Create(ctx, u); err != nil {
				return err
			}
			users = append(users, u)
		}
		john, jane, alice, bob := users[0], users[1], users[2], users[3]

		contacts := []model.Contact{
			{Name: "Charlie", Phone: "5555555555", UserID: &alice.ID},
			{Name: "David", Phone: "6666666666", UserID: &alice.ID},
			{Name: "Eve", Phone: "7777777777", UserID: &bob.ID},
			{Name: "Frank", Phone: "8888888888", UserID: &bob.ID},
			{Name: "Grace", Phone: "9999999999"},
			{Name: "Heidi", Phone: "1010101010"},
		}
		if err := tx.Contact.CreateMany(ctx, contacts); err != nil {
			return err
		}

		reports := []model.SpamReport{
			{Phone: john.Phone, ReportedByID: jane.ID},
			{Phone: jane.Phone, ReportedByID: john.ID},
			{Phone: "1010101010", ReportedByID: bob.ID},
		}
		if err := tx.SpamReport.CreateMany(ctx, reports); err != nil {
			return err
		}

		zap.L().Info("database seeded",
			zap.Int("users", len(users)),
			zap.Int("contacts", len(contacts)),
			zap.Int("spam_reports", len(reports)),
		)
		return nil
	})
}

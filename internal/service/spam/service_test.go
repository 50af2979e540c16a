package spam

import (
	"context"
	"errors"
	"sync"
	"testing"

	"caller_id_server/internal/dao/database/dbtest"
	"caller_id_server/internal/infrastructure/mq"
	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.SpamReportedEvent
	err    error
}

func (p *recordingPublisher) PublishSpamReported(_ context.Context, e mq.SpamReportedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestReportSpamRequiresPhone(t *testing.T) {
	repos, _ := dbtest.Open(t)
	s := NewSpamService(repos, nil)

	_, err := s.ReportSpam(context.Background(), " ", 1)
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v", err)
	}
}

func TestReportSpamTwiceStoresTwoRows(t *testing.T) {
	repos, db := dbtest.Open(t)
	pub := &recordingPublisher{}
	s := NewSpamService(repos, pub)
	ctx := context.Background()

	first, err := s.ReportSpam(ctx, "9999999999", 7)
	if err != nil {
		t.Fatalf("first report: %v", err)
	}
	second, err := s.ReportSpam(ctx, "9999999999", 7)
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("reports share id %d", first.ID)
	}
	if first.Phone != "9999999999" || first.ReportedByID != 7 {
		t.Fatalf("report = %+v", first)
	}

	var rows int64
	db.Model(&model.SpamReport{}).Where("phone = ? AND reported_by_id = ?", "9999999999", 7).Count(&rows)
	if rows != 2 {
		t.Fatalf("rows = %d, want 2", rows)
	}

	if len(pub.events) != 2 {
		t.Fatalf("events = %d", len(pub.events))
	}
	if e := pub.events[0]; e.Type != mq.EventSpamReported || e.ReportID != first.ID || e.Phone != "9999999999" {
		t.Fatalf("event = %+v", e)
	}
}

func TestReportSpamSurvivesPublishFailure(t *testing.T) {
	repos, _ := dbtest.Open(t)
	s := NewSpamService(repos, &recordingPublisher{err: errors.New("broker down")})

	res, err := s.ReportSpam(context.Background(), "1234567890", 3)
	if err != nil {
		t.Fatalf("publish failure leaked: %v", err)
	}
	if res.ID == 0 {
		t.Fatalf("report not stored: %+v", res)
	}
}

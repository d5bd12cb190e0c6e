package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

func newSentEmail(token uuid.UUID) *model.SentEmail {
	return &model.SentEmail{
		CampaignID:    1,
		EmployeeID:    2,
		TemplateID:    3,
		TrackingToken: token,
		Subject:       "subject",
		Body:          "body",
	}
}

func TestCreateWithLinksCommitsAfterDelivery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := &SentEmailRepository{DB: db}
	token := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO sent_emails").
		WithArgs(1, 2, 3, token, "subject", "body").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
	mock.ExpectExec("INSERT INTO tracked_links").
		WithArgs(10, 0, "https://a.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tracked_links").
		WithArgs(10, 1, "https://b.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	delivered := false
	msg := newSentEmail(token)
	err = repo.CreateWithLinks(msg, []string{"https://a.com", "https://b.com"}, func() error {
		delivered = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !delivered {
		t.Error("delivery callback was never invoked")
	}
	if msg.ID != 10 {
		t.Errorf("expected id 10, got %d", msg.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Delivery failure must roll the whole unit back: the sent email and its
// tracked links are created in the same transaction as the delivery attempt.
func TestCreateWithLinksRollsBackOnDeliveryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := &SentEmailRepository{DB: db}
	token := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO sent_emails").
		WithArgs(1, 2, 3, token, "subject", "body").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
	mock.ExpectExec("INSERT INTO tracked_links").
		WithArgs(10, 0, "https://a.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	deliveryErr := errors.New("smtp rejected")
	err = repo.CreateWithLinks(newSentEmail(token), []string{"https://a.com"}, func() error {
		return deliveryErr
	})
	if !errors.Is(err, deliveryErr) {
		t.Fatalf("expected delivery error to propagate, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateWithLinksRollsBackOnLinkInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := &SentEmailRepository{DB: db}
	token := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO sent_emails").
		WithArgs(1, 2, 3, token, "subject", "body").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
	mock.ExpectExec("INSERT INTO tracked_links").
		WithArgs(10, 0, "https://a.com").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	delivered := false
	err = repo.CreateWithLinks(newSentEmail(token), []string{"https://a.com"}, func() error {
		delivered = true
		return nil
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if delivered {
		t.Error("delivery must not be attempted when link persistence fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetByTokenUnknownReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := &SentEmailRepository{DB: db}
	token := uuid.New()

	mock.ExpectQuery("FROM sent_emails WHERE tracking_token").
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	msg, err := repo.GetByToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if msg != nil {
		t.Errorf("unknown token must resolve to nil, got %+v", msg)
	}
}

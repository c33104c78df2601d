package feedback

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs("f-1", "user-1", 5, "great tool", "general", "me@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), Feedback{
		ID:       "f-1",
		UserID:   "user-1",
		Rating:   5,
		Message:  "great tool",
		Category: "general",
		Email:    "me@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoCreateNullsAnonymousFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs("f-1", nil, 3, "ok", "general", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), Feedback{
		ID:       "f-1",
		Rating:   3,
		Message:  "ok",
		Category: "general",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/infra/adapter/persistence/postgres"
)

func summaryRow(s *entity.Summary) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tier", "input_chars", "summary_chars",
		"text", "elapsed_ms", "created_at",
	}).AddRow(
		s.ID, s.Tier, s.InputChars, s.SummaryChars,
		s.Text, s.ElapsedMS, s.CreatedAt,
	)
}

func TestSummaryRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	summary := &entity.Summary{
		Tier:         "medium",
		InputChars:   4200,
		SummaryChars: 480,
		Text:         "A condensed rendition of the document.",
		ElapsedMS:    1530,
		CreatedAt:    now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO summaries`)).
		WithArgs("medium", 4200, 480, summary.Text, int64(1530), now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := postgres.NewSummaryRepo(db)
	if err := repo.Create(context.Background(), summary); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if summary.ID != 7 {
		t.Errorf("ID = %d, want 7 from RETURNING clause", summary.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(`FROM summaries`).
		WithArgs(20, 0).
		WillReturnRows(summaryRow(&entity.Summary{
			ID: 1, Tier: "short", InputChars: 900, SummaryChars: 120,
			Text: "short summary", ElapsedMS: 820, CreatedAt: now,
		}))

	repo := postgres.NewSummaryRepo(db)
	got, err := repo.List(context.Background(), 0, 20)
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].Tier != "short" {
		t.Errorf("Tier = %q, want short", got[0].Tier)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM summaries`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	repo := postgres.NewSummaryRepo(db)
	got, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if got != 42 {
		t.Errorf("Count = %d, want 42", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	want := &entity.Summary{
		ID: 3, Tier: "long", InputChars: 12000, SummaryChars: 1400,
		Text: "long summary text", ElapsedMS: 4100, CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs(int64(3)).
		WillReturnRows(summaryRow(want))

	repo := postgres.NewSummaryRepo(db)
	got, err := repo.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tier", "input_chars", "summary_chars",
			"text", "elapsed_ms", "created_at",
		}))

	repo := postgres.NewSummaryRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Errorf("Get = %+v, want nil for missing row", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobtrack/internal/domain/job"
)

func fixedNow() time.Time {
	return time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)
}

func newTestTransfer(db *mockDB, repo *mockJobRepo) *Transfer {
	uc := NewTransferUsecase(db, repo, testStatuses(), nil, nil)
	uc.now = fixedNow
	return uc
}

func TestTransfer_ImportCSV_BadHeader(t *testing.T) {
	uc := newTestTransfer(&mockDB{}, &mockJobRepo{})

	_, err := uc.ImportCSV(context.Background(), "Name,Email\nfoo,bar\n")
	if !errors.Is(err, ErrBadHeader) {
		t.Fatalf("expected ErrBadHeader, got %v", err)
	}
}

func TestTransfer_ImportCSV_HeaderOnly(t *testing.T) {
	db := &mockDB{}
	uc := newTestTransfer(db, &mockJobRepo{})

	_, err := uc.ImportCSV(context.Background(), "ID,CreateDate,Company,JobPosition,Link,Status\n")
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if db.begins != 0 {
		t.Fatalf("no transaction should start for an empty import")
	}
}

func TestTransfer_ImportCSV_Reconciles(t *testing.T) {
	db := &mockDB{}
	repo := &mockJobRepo{existing: map[int64]bool{7: true}}
	uc := newTestTransfer(db, repo)

	csv := strings.Join([]string{
		"ID,CreateDate,Company,JobPosition,Link,Status",
		`7,2025-06-01T09:00:00Z,Acme,Backend Engineer,https://acme.test/1,Interview`,
		`999,2025-06-02,Globex,SRE,https://globex.test/2,rejected`,
		`,,Initech,Platform Engineer,https://initech.test/3,Nonsense`,
	}, "\n")

	result, err := uc.ImportCSV(context.Background(), csv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Imported != 3 {
		t.Fatalf("expected 3 imported, got %d", result.Imported)
	}

	// Known id is replaced in place.
	if len(repo.replaced) != 1 || repo.replaced[0].ID != 7 {
		t.Fatalf("expected job 7 replaced, got %+v", repo.replaced)
	}
	if repo.replaced[0].StatusID != job.StatusInterview {
		t.Fatalf("expected interview status, got %d", repo.replaced[0].StatusID)
	}

	// Unknown id and missing id both insert fresh records.
	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(repo.inserted))
	}
	if repo.inserted[0].StatusID != job.StatusRejected {
		t.Fatalf("label match is case-insensitive, got status %d", repo.inserted[0].StatusID)
	}
	if repo.inserted[1].StatusID != job.DefaultStatusID {
		t.Fatalf("unresolvable label should default, got status %d", repo.inserted[1].StatusID)
	}
	if !repo.inserted[1].CreateDate.Equal(fixedNow()) {
		t.Fatalf("missing CreateDate should default to now, got %v", repo.inserted[1].CreateDate)
	}

	if db.commits != 1 || db.rollbacks != 0 {
		t.Fatalf("expected one commit, got commits=%d rollbacks=%d", db.commits, db.rollbacks)
	}
}

func TestTransfer_ImportCSV_SkipsInvalidRows(t *testing.T) {
	db := &mockDB{}
	repo := &mockJobRepo{}
	uc := newTestTransfer(db, repo)

	csv := strings.Join([]string{
		"ID,CreateDate,Company,JobPosition,Link,Status",
		`,,Acme,Engineer,https://acme.test,Sent Request`,
		`,,,"missing company",https://nope.test,Sent Request`,
		`bad,row,with,too,many,fields,entirely`,
	}, "\n")

	result, err := uc.ImportCSV(context.Background(), csv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("expected 1 imported, got %d", result.Imported)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", len(result.Skipped))
	}
}

func TestTransfer_ImportCSV_RollsBackOnWriteFailure(t *testing.T) {
	db := &mockDB{}
	repo := &mockJobRepo{insertErr: errors.New("disk full"), failAfter: 1}
	uc := newTestTransfer(db, repo)

	csv := strings.Join([]string{
		"ID,CreateDate,Company,JobPosition,Link,Status",
		`,,Acme,Engineer,https://acme.test/1,Sent Request`,
		`,,Globex,Engineer,https://globex.test/2,Sent Request`,
	}, "\n")

	result, err := uc.ImportCSV(context.Background(), csv)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if result.Imported != 0 {
		t.Fatalf("aborted import must report zero, got %d", result.Imported)
	}
	if db.commits != 0 {
		t.Fatalf("aborted import must not commit")
	}
	if db.rollbacks != 1 {
		t.Fatalf("expected rollback, got %d", db.rollbacks)
	}
}

func TestTransfer_ExportCSV(t *testing.T) {
	repo := &mockJobRepo{items: []job.Job{
		{
			ID:          2,
			CreateDate:  time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC),
			Company:     "Acme, Inc.",
			JobPosition: "Backend Engineer",
			Link:        "https://acme.test/jobs/2",
			StatusID:    job.StatusInterview,
		},
		{
			ID:          1,
			CreateDate:  time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
			Company:     "Globex",
			JobPosition: "SRE",
			Link:        "https://globex.test/jobs/1",
			StatusID:    99, // dangling status reference
		},
	}}
	uc := newTestTransfer(&mockDB{}, repo)

	content, filename, err := uc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if filename != "job_search_2025-07-15.csv" {
		t.Fatalf("unexpected filename %q", filename)
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ID,CreateDate,Company,JobPosition,Link,Status" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Acme, Inc."`) {
		t.Fatalf("comma-bearing company must be quoted: %q", lines[1])
	}
	if !strings.Contains(lines[1], "Interview") {
		t.Fatalf("expected resolved label in %q", lines[1])
	}
	if !strings.Contains(lines[2], job.UnknownLabel) {
		t.Fatalf("dangling status should render %q: %q", job.UnknownLabel, lines[2])
	}
}

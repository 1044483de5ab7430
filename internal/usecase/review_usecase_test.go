package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobtrack/internal/domain/job"
)

func seedJobs(n int) []job.Job {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := make([]job.Job, 0, n)
	// Newest first, the way the store returns them.
	for i := n; i >= 1; i-- {
		out = append(out, job.Job{
			ID:          int64(i),
			CreateDate:  base.Add(time.Duration(i) * time.Minute),
			Company:     fmt.Sprintf("Company %d", i),
			JobPosition: "Engineer",
			Link:        fmt.Sprintf("https://example.com/%d", i),
			StatusID:    job.StatusSentRequest,
		})
	}
	return out
}

func TestReview_ListJobs_FirstPage(t *testing.T) {
	repo := &mockJobRepo{items: seedJobs(120)}
	uc := NewReviewUsecase(repo, testStatuses(), nil, nil)

	page, err := uc.ListJobs(context.Background(), ReviewParams{Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != PageSize {
		t.Fatalf("expected %d items, got %d", PageSize, len(page.Items))
	}
	if page.Total != 120 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: total=%d pages=%d", page.Total, page.TotalPages)
	}
	if page.HasPrev {
		t.Fatalf("first page should have no prev")
	}
	if !page.HasNext {
		t.Fatalf("first page should have next")
	}
	if page.Items[0].ID != 120 {
		t.Fatalf("expected newest job first, got id %d", page.Items[0].ID)
	}
	if page.Items[0].StatusLabel != "Sent Request" {
		t.Fatalf("unexpected status label %q", page.Items[0].StatusLabel)
	}
}

func TestReview_ListJobs_LastPage(t *testing.T) {
	repo := &mockJobRepo{items: seedJobs(120)}
	uc := NewReviewUsecase(repo, testStatuses(), nil, nil)

	page, err := uc.ListJobs(context.Background(), ReviewParams{Page: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 20 {
		t.Fatalf("expected 20 items on the last page, got %d", len(page.Items))
	}
	if !page.HasPrev || page.HasNext {
		t.Fatalf("unexpected nav state: prev=%v next=%v", page.HasPrev, page.HasNext)
	}
}

func TestReview_ListJobs_PageClamped(t *testing.T) {
	repo := &mockJobRepo{items: seedJobs(60)}
	uc := NewReviewUsecase(repo, testStatuses(), nil, nil)

	page, err := uc.ListJobs(context.Background(), ReviewParams{Page: 99})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Page != 2 {
		t.Fatalf("expected clamp to page 2, got %d", page.Page)
	}

	page, err = uc.ListJobs(context.Background(), ReviewParams{Page: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("expected clamp to page 1, got %d", page.Page)
	}
}

func TestReview_ListJobs_Empty(t *testing.T) {
	uc := NewReviewUsecase(&mockJobRepo{}, testStatuses(), nil, nil)

	page, err := uc.ListJobs(context.Background(), ReviewParams{Page: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 0 || page.TotalPages != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if page.HasPrev || page.HasNext {
		t.Fatalf("empty page should have no nav")
	}
}

func TestReview_ListJobs_BadDate(t *testing.T) {
	uc := NewReviewUsecase(&mockJobRepo{}, testStatuses(), nil, nil)

	_, err := uc.ListJobs(context.Background(), ReviewParams{DateFrom: "06/01/2025", Page: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReview_ListJobs_DateBoundsInclusive(t *testing.T) {
	repo := &mockJobRepo{}
	uc := NewReviewUsecase(repo, testStatuses(), nil, nil)

	_, err := uc.ListJobs(context.Background(), ReviewParams{
		DateFrom: "2025-06-01",
		DateTo:   "2025-06-30",
		Page:     1,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if repo.lastFilter.From == nil || repo.lastFilter.To == nil {
		t.Fatalf("expected both bounds set")
	}
	wantFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !repo.lastFilter.From.Equal(wantFrom) {
		t.Fatalf("from = %v, want %v", repo.lastFilter.From, wantFrom)
	}
	wantTo := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	if !repo.lastFilter.To.Equal(wantTo) {
		t.Fatalf("to = %v, want %v", repo.lastFilter.To, wantTo)
	}
}

func TestReview_ListJobs_CacheHit(t *testing.T) {
	cache := newMockCache()
	primed := &mockJobRepo{items: seedJobs(3)}
	uc := NewReviewUsecase(primed, testStatuses(), cache, nil)

	if _, err := uc.ListJobs(context.Background(), ReviewParams{Page: 1}); err != nil {
		t.Fatalf("priming call failed: %v", err)
	}

	// A failing store must not matter once the snapshot is cached.
	broken := &mockJobRepo{listErr: errors.New("store down")}
	uc = NewReviewUsecase(broken, testStatuses(), cache, nil)

	page, err := uc.ListJobs(context.Background(), ReviewParams{Page: 1})
	if err != nil {
		t.Fatalf("expected cache hit, got err: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 cached items, got %d", len(page.Items))
	}
}

func TestReview_ListJobs_DistinctFiltersDistinctKeys(t *testing.T) {
	cache := newMockCache()
	repo := &mockJobRepo{items: seedJobs(2)}
	uc := NewReviewUsecase(repo, testStatuses(), cache, nil)

	if _, err := uc.ListJobs(context.Background(), ReviewParams{Page: 1}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.ListJobs(context.Background(), ReviewParams{DateFrom: "2025-06-01", Page: 1}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(cache.store) != 2 {
		t.Fatalf("expected 2 cached snapshots, got %d", len(cache.store))
	}
}

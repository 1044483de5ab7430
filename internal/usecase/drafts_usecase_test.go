package usecase

import (
	"context"
	"testing"
)

func TestDrafts_SaveAndGet(t *testing.T) {
	uc := NewDraftsUsecase(newMockCache(), nil)

	in := Drafts{Company: "Acme", JobPosition: "Engineer", Link: "https://acme.test", ActiveTab: "review"}
	if err := uc.Save(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	out, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestDrafts_ClearKeepsActiveTab(t *testing.T) {
	uc := NewDraftsUsecase(newMockCache(), nil)

	seed := Drafts{Company: "Acme", JobPosition: "Engineer", Link: "https://acme.test", ActiveTab: "capture"}
	if err := uc.Save(context.Background(), seed); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	out, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Company != "" || out.JobPosition != "" || out.Link != "" {
		t.Fatalf("fields should be cleared, got %+v", out)
	}
	if out.ActiveTab != "capture" {
		t.Fatalf("active tab should survive a clear, got %q", out.ActiveTab)
	}
}

func TestDrafts_NoCacheIsNoop(t *testing.T) {
	uc := NewDraftsUsecase(nil, nil)

	if err := uc.Save(context.Background(), Drafts{Company: "Acme"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != (Drafts{}) {
		t.Fatalf("expected zero drafts without a cache, got %+v", out)
	}
}

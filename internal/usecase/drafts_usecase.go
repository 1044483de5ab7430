package usecase

import (
	"context"
	"log"
)

const draftsKey = "drafts:popup"

// Drafts remembers the capture form's field values between sessions, so a
// half-filled popup survives being closed. ActiveTab is UI state carried
// along for the same reason.
type Drafts struct {
	Company     string `json:"company"`
	JobPosition string `json:"job_position"`
	Link        string `json:"link"`
	ActiveTab   string `json:"active_tab"`
}

type DraftsUsecase interface {
	Get(ctx context.Context) (Drafts, error)
	Save(ctx context.Context, d Drafts) error
	Clear(ctx context.Context) error
}

type DraftStore struct {
	cache  Cache
	logger *log.Logger
}

func NewDraftsUsecase(cache Cache, logger *log.Logger) *DraftStore {
	return &DraftStore{cache: cache, logger: logger}
}

func (u *DraftStore) Get(ctx context.Context) (Drafts, error) {
	var d Drafts
	if u.cache == nil {
		return d, nil
	}
	if _, err := u.cache.GetJSON(ctx, draftsKey, &d); err != nil {
		return Drafts{}, ErrInternal
	}
	return d, nil
}

func (u *DraftStore) Save(ctx context.Context, d Drafts) error {
	if u.cache == nil {
		return nil
	}
	if err := u.cache.SetJSON(ctx, draftsKey, d, 0); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Drafts] save failed | error=%v", err)
		}
		return ErrInternal
	}
	return nil
}

// Clear wipes the capture fields but keeps the remembered tab.
func (u *DraftStore) Clear(ctx context.Context) error {
	d, err := u.Get(ctx)
	if err != nil {
		return err
	}
	return u.Save(ctx, Drafts{ActiveTab: d.ActiveTab})
}

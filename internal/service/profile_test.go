package service

import (
	"context"
	"testing"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type fakeProfileRepo struct {
	repository.Repository
	byID   map[string]*models.Profile
	byName map[string]*models.Profile
}

func (f *fakeProfileRepo) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return f.byID[id], nil
}

func (f *fakeProfileRepo) GetProfileByDisplayName(ctx context.Context, name string) (*models.Profile, error) {
	return f.byName[name], nil
}

func TestProfileGetByIDOrName(t *testing.T) {
	alice := &models.Profile{ID: "u1", DisplayName: "alice"}
	svc := &ProfileService{Repo: &fakeProfileRepo{
		byID:   map[string]*models.Profile{"u1": alice},
		byName: map[string]*models.Profile{"alice": alice},
	}}
	ctx := context.Background()

	got, err := svc.GetByIDOrName(ctx, "u1")
	if err != nil || got != alice {
		t.Fatalf("by id: got=%v err=%v", got, err)
	}

	got, err = svc.GetByIDOrName(ctx, "alice")
	if err != nil || got != alice {
		t.Fatalf("by name: got=%v err=%v", got, err)
	}

	if _, err = svc.GetByIDOrName(ctx, "nobody"); err != ErrNotFound {
		t.Fatalf("miss: err=%v want ErrNotFound", err)
	}
	if _, err = svc.GetByIDOrName(ctx, "  "); err != ErrInvalid {
		t.Fatalf("blank: err=%v want ErrInvalid", err)
	}
}

func TestDisplayNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"Trader.Joe@example.com", "trader_joe"},
		{"a+b@x.io", "a_b"},
		{"123@x.io", "123"},
		{"", "trader"},
	}
	for _, tc := range cases {
		if got := displayNameFromEmail(tc.email); got != tc.want {
			t.Errorf("displayNameFromEmail(%q)=%q want %q", tc.email, got, tc.want)
		}
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type fakeReferralRepo struct {
	repository.Repository

	byCode        map[string]*models.Profile
	byReferred    map[string]*models.Referral
	inserted      []*models.Referral
	count         int64
	notifications []*models.Notification
}

func (f *fakeReferralRepo) GetProfileByReferralCode(ctx context.Context, code string) (*models.Profile, error) {
	return f.byCode[code], nil
}

func (f *fakeReferralRepo) GetReferralByReferredID(ctx context.Context, referredID string) (*models.Referral, error) {
	return f.byReferred[referredID], nil
}

func (f *fakeReferralRepo) InsertReferral(ctx context.Context, item *models.Referral) error {
	f.inserted = append(f.inserted, item)
	f.count++
	return nil
}

func (f *fakeReferralRepo) CountReferralsByReferrer(ctx context.Context, referrerID string) (int64, error) {
	return f.count, nil
}

func (f *fakeReferralRepo) InsertNotification(ctx context.Context, item *models.Notification) error {
	f.notifications = append(f.notifications, item)
	return nil
}

func referralFixture() (*fakeReferralRepo, *ReferralService, *models.Profile, *models.Profile) {
	alice := &models.Profile{ID: "alice", DisplayName: "alice", ReferralCode: "ALICE123"}
	bob := &models.Profile{ID: "bob", DisplayName: "bob", ReferralCode: "BOB45678"}
	repo := &fakeReferralRepo{
		byCode:     map[string]*models.Profile{"ALICE123": alice, "BOB45678": bob},
		byReferred: map[string]*models.Referral{},
	}
	svc := &ReferralService{
		Repo:      repo,
		Notifier:  &Notifier{Repo: repo},
		Threshold: 3,
	}
	return repo, svc, alice, bob
}

func TestReferralClaim_CreditsReferrerAndNotifies(t *testing.T) {
	repo, svc, _, bob := referralFixture()

	if err := svc.Claim(context.Background(), bob, "alice123"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("inserted=%d", len(repo.inserted))
	}
	ref := repo.inserted[0]
	if ref.ReferrerID != "alice" || ref.ReferredID != "bob" || ref.Code != "ALICE123" {
		t.Fatalf("referral=%+v", ref)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("notifications=%d", len(repo.notifications))
	}
	if repo.notifications[0].UserID != "alice" || repo.notifications[0].Kind != models.NotificationKindReferral {
		t.Fatalf("notification=%+v", repo.notifications[0])
	}
}

func TestReferralClaim_SelfReferralRejected(t *testing.T) {
	_, svc, alice, _ := referralFixture()

	err := svc.Claim(context.Background(), alice, "ALICE123")
	if !errors.Is(err, ErrSelfAction) {
		t.Fatalf("err=%v want ErrSelfAction", err)
	}
}

func TestReferralClaim_OnceOnly(t *testing.T) {
	repo, svc, _, bob := referralFixture()
	repo.byReferred["bob"] = &models.Referral{ReferrerID: "carol", ReferredID: "bob"}

	err := svc.Claim(context.Background(), bob, "ALICE123")
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("err=%v want ErrAlreadyClaimed", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("claim must not insert when already referred")
	}
}

func TestReferralClaim_UnknownCode(t *testing.T) {
	_, svc, _, bob := referralFixture()

	err := svc.Claim(context.Background(), bob, "NOPE0000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestReferralLink(t *testing.T) {
	_, svc, alice, _ := referralFixture()
	svc.LinkBase = "https://tradeflex.app/r/"

	if got := svc.Link(alice); got != "https://tradeflex.app/r/ALICE123" {
		t.Fatalf("link=%q", got)
	}
}

package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Fatalf("got %q", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("key survived delete")
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("expired key still readable")
	}
}

func TestNormalizeTTL(t *testing.T) {
	if got := normalizeTTL(-time.Minute); got != 0 {
		t.Fatalf("negative ttl normalized to %v, want 0", got)
	}
	if got := normalizeTTL(0); got != 0 {
		t.Fatalf("zero ttl normalized to %v", got)
	}
	if got := normalizeTTL(time.Second); got != time.Second {
		t.Fatalf("positive ttl changed to %v", got)
	}
}

func TestMemoryStore_NegativeTTLMeansNoExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), -time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatalf("negative ttl must store without expiry")
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("abc"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, _ := s.Get(ctx, "k")
	got[0] = 'z'

	again, _, _ := s.Get(ctx, "k")
	if !bytes.Equal(again, []byte("abc")) {
		t.Fatalf("stored value mutated: %q", again)
	}
}

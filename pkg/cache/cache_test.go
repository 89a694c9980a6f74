package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("empty cache Get = (%v, %v), want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("artifact-bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v), want hit", ok, err)
	}
	if string(got) != "artifact-bytes" {
		t.Errorf("Get = %q, want artifact-bytes", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Error("non-positive ttl should mean no expiry")
	}

	if err := c.Set(ctx, "fleeting", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "fleeting"); ok {
		t.Error("expired entry should miss")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("null cache Get = (%v, %v), want miss", ok, err)
	}
}

func TestKeyer(t *testing.T) {
	k := NewKeyer("")
	opts := ArtifactOpts{Format: "png"}

	a := k.ArtifactKey("confighash", opts)
	b := k.ArtifactKey("confighash", opts)
	if a != b {
		t.Error("identical inputs must produce identical keys")
	}
	if a == k.ArtifactKey("otherhash", opts) {
		t.Error("different config hashes must produce different keys")
	}
	if a == k.ArtifactKey("confighash", ArtifactOpts{Format: "png", DebugBoxes: true}) {
		t.Error("different options must produce different keys")
	}

	scoped := NewKeyer("user:42:")
	if got := scoped.ArtifactKey("confighash", opts); got == a || got[:8] != "user:42:" {
		t.Errorf("scoped key = %q, want user:42: prefix and distinct key", got)
	}
}

func TestHash(t *testing.T) {
	if got := Hash([]byte("")); len(got) != 64 {
		t.Errorf("hash length = %d, want 64", len(got))
	}
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("distinct inputs must hash differently")
	}
}

package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	baseline := k.BaselineKey("abc")
	if !strings.HasPrefix(baseline, "baseline:") {
		t.Errorf("BaselineKey() = %q, want baseline: prefix", baseline)
	}
	if baseline != k.BaselineKey("abc") {
		t.Error("BaselineKey() is not deterministic")
	}
	if baseline == k.BaselineKey("abd") {
		t.Error("BaselineKey() ignores the problem hash")
	}

	result := k.ResultKey("abc", "annealing", 1)
	if !strings.HasPrefix(result, "result:") {
		t.Errorf("ResultKey() = %q, want result: prefix", result)
	}
	if result == k.ResultKey("abc", "annealing", 2) {
		t.Error("ResultKey() ignores the seed")
	}
	if result == k.ResultKey("abc", "hill-climbing", 1) {
		t.Error("ResultKey() ignores the algorithm")
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(nil, "sweep42:")

	if got := k.BaselineKey("abc"); !strings.HasPrefix(got, "sweep42:baseline:") {
		t.Errorf("BaselineKey() = %q, want sweep42:baseline: prefix", got)
	}
	if got := k.ResultKey("abc", "beam", 7); !strings.HasPrefix(got, "sweep42:result:") {
		t.Errorf("ResultKey() = %q, want sweep42:result: prefix", got)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("hello"))
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if a != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if a == Hash([]byte("world")) {
		t.Error("Hash() collides on different inputs")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, found, err := c.Get(ctx, "key"); err != nil || found {
		t.Errorf("Get() = (found=%v, err=%v), want a silent miss", found, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, found, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() missed a stored key")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if _, found, err := c.Get(context.Background(), "absent"); err != nil || found {
		t.Errorf("Get(absent) = (found=%v, err=%v), want a silent miss", found, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("payload"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found, _ := c.Get(ctx, "key"); found {
		t.Error("Get() returned an expired entry")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := c.Get(ctx, "key"); found {
		t.Error("Get() found a deleted key")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryWritesThrough(t *testing.T) {
	ctx := context.Background()
	file, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMemory(file, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if err := m.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if data, ok, _ := file.Get(ctx, "k"); !ok || string(data) != "v" {
		t.Errorf("backing cache = %q, %v; want written through", data, ok)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("Get after Delete should miss")
	}
	if _, ok, _ := file.Get(ctx, "k"); ok {
		t.Error("Delete should reach the backing cache")
	}
}

func TestMemoryPromotesFromBacking(t *testing.T) {
	ctx := context.Background()
	file, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := file.Set(ctx, "k", []byte("disk"), time.Hour); err != nil {
		t.Fatal(err)
	}

	m, err := NewMemory(file, 4)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Fatalf("Len = %d before first read", m.Len())
	}

	data, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(data) != "disk" {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want entry promoted to memory", m.Len())
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory(nil, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := m.Get(ctx, "short"); ok {
		t.Error("expired entry should miss")
	}
}

func TestMemoryEviction(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory(nil, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{"a", "b", "c"} {
		_ = m.Set(ctx, k, []byte(k), 0)
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "a"); ok {
		t.Error("least recently used entry should be evicted")
	}
}

func TestNewMemoryInvalidSize(t *testing.T) {
	if _, err := NewMemory(nil, 0); err == nil {
		t.Error("NewMemory(size 0) should fail")
	}
}

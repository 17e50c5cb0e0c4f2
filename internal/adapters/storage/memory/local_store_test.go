package memory

import (
	"context"
	"testing"
)

func TestLocalStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore()

	if err := s.SetItem(ctx, "b", "2"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.SetItem(ctx, "a", "1"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	v, ok, err := s.GetItem(ctx, "a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("expected a=1, got %q ok=%v err=%v", v, ok, err)
	}

	keys, _ := s.Keys(ctx)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected sorted keys [a b], got %v", keys)
	}

	if err := s.RemoveItem(ctx, "a"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, "a"); ok {
		t.Fatalf("expected a removed")
	}

	if err := s.SetItem(ctx, "  ", "x"); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

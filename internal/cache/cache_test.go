package cache

import (
	"testing"

	"github.com/recera/silk/pkg/compiler"
)

func TestCache_HitAfterPut(t *testing.T) {
	c := New()
	out := &compiler.Output{CSS: "css", HTML: "html"}

	c.Put("app", "container a {\n}\n", out)

	got, ok := c.Get("app", "container a {\n}\n")
	if !ok {
		t.Fatal("expected a hit for unchanged source")
	}
	if got != out {
		t.Error("hit returned a different output")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 0 {
		t.Errorf("stats = %+v, want 1 hit, 0 misses", stats)
	}
}

func TestCache_StaleSourceMisses(t *testing.T) {
	c := New()
	c.Put("app", "old source", &compiler.Output{})

	if _, ok := c.Get("app", "new source"); ok {
		t.Fatal("stale entry served as a hit")
	}
	if stats := c.Stats(); stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCache_UnknownKeyMisses(t *testing.T) {
	c := New()
	if _, ok := c.Get("nope", "src"); ok {
		t.Fatal("unknown key served as a hit")
	}
}

func TestCache_PutReplaces(t *testing.T) {
	c := New()
	c.Put("app", "v1", &compiler.Output{CSS: "one"})
	c.Put("app", "v2", &compiler.Output{CSS: "two"})

	got, ok := c.Get("app", "v2")
	if !ok || got.CSS != "two" {
		t.Fatalf("replacement entry not served: %+v ok=%v", got, ok)
	}
	if stats := c.Stats(); stats.EntryCount != 1 {
		t.Errorf("EntryCount = %d, want 1", stats.EntryCount)
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New()
	c.Put("app", "src", &compiler.Output{})

	if !c.Invalidate("app") {
		t.Fatal("Invalidate reported no entry")
	}
	if c.Invalidate("app") {
		t.Fatal("Invalidate reported an entry twice")
	}
	if _, ok := c.Get("app", "src"); ok {
		t.Fatal("invalidated entry served as a hit")
	}

	stats := c.Stats()
	if stats.Evictions != 1 || stats.EntryCount != 0 {
		t.Errorf("stats = %+v, want 1 eviction, 0 entries", stats)
	}
}

func TestCache_Reset(t *testing.T) {
	c := New()
	c.Put("a", "src", &compiler.Output{})
	c.Get("a", "src")
	c.Reset()

	if stats := c.Stats(); stats != (Stats{}) {
		t.Errorf("Reset left counters behind: %+v", stats)
	}
	if _, ok := c.Get("a", "src"); ok {
		t.Error("Reset left an entry behind")
	}
}

func TestHashSource_Distinguishes(t *testing.T) {
	if HashSource("a") == HashSource("b") {
		t.Error("different sources hashed alike")
	}
	if HashSource("a") != HashSource("a") {
		t.Error("hash is not deterministic")
	}
}

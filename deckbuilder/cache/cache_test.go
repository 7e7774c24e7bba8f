package cache

import (
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)

	c.Set("cards_count", int64(42), DefaultTTL)

	got, ok := Get[int64](c, "cards_count")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestCache_GetMissingKey(t *testing.T) {
	c := newTestCache(t)

	if _, ok := Get[string](c, "nope"); ok {
		t.Error("Get() ok = true for missing key")
	}
}

func TestCache_GetTypeMismatch(t *testing.T) {
	c := newTestCache(t)
	c.Set("key", "a string", DefaultTTL)

	if _, ok := Get[int](c, "key"); ok {
		t.Error("Get() ok = true for mismatched type")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	c.Set("short", "value", 10*time.Millisecond)

	if _, ok := Get[string](c, "short"); !ok {
		t.Fatal("Get() ok = false before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := Get[string](c, "short"); ok {
		t.Error("Get() ok = true after expiry")
	}
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c := newTestCache(t)
	c.Set(KeyCardByID("abc"), "card", DefaultTTL)
	c.Set(KeyCardsBySet("hp1"), "set", DefaultTTL)
	c.Set(KeyCountCards, int64(7), DefaultTTL)
	c.Set(KeyDecksList, "decks", DefaultTTL)

	c.Invalidate("card_")

	if _, ok := Get[string](c, KeyCardByID("abc")); ok {
		t.Error("card_byId entry survived invalidation")
	}
	if _, ok := Get[string](c, KeyCardsBySet("hp1")); !ok {
		t.Error("cards_bySet entry removed by card_ invalidation")
	}
	if _, ok := Get[int64](c, KeyCountCards); !ok {
		t.Error("cards_count entry removed by card_ invalidation")
	}
	if _, ok := Get[string](c, KeyDecksList); !ok {
		t.Error("decks_list entry removed by card_ invalidation")
	}
}

func TestCache_InvalidateCardCoversAll(t *testing.T) {
	c := newTestCache(t)
	c.Set(KeyCardByID("abc"), "card", DefaultTTL)
	c.Set(KeyCardsBySet("hp1"), "set", DefaultTTL)
	c.Set(KeyCardsSearchByQuery("name=pikachu"), "search", DefaultTTL)
	c.Set(KeyCountCards, int64(7), DefaultTTL)
	c.Set(KeyDecksList, "decks", DefaultTTL)

	c.Invalidate("card")

	for _, key := range []string{
		KeyCardByID("abc"),
		KeyCardsBySet("hp1"),
		KeyCardsSearchByQuery("name=pikachu"),
		KeyCountCards,
	} {
		if _, ok := Get[string](c, key); ok {
			t.Errorf("%s survived card invalidation", key)
		}
		if _, ok := Get[int64](c, key); ok {
			t.Errorf("%s survived card invalidation", key)
		}
	}

	if _, ok := Get[string](c, KeyDecksList); !ok {
		t.Error("decks_list removed by card invalidation")
	}
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t)
	c.Set("a", 1, DefaultTTL)
	c.Set("b", 2, DefaultTTL)

	c.Clear()

	if _, ok := Get[int](c, "a"); ok {
		t.Error("entry a survived Clear()")
	}
	if _, ok := Get[int](c, "b"); ok {
		t.Error("entry b survived Clear()")
	}
}

// A Set racing a Get miss on the same key must never leave a live entry
// that Invalidate cannot reach.
func TestCache_SetRacingGetStaysInvalidatable(t *testing.T) {
	c := newTestCache(t)
	key := KeyCardByID("contested")

	for i := 0; i < 5000; i++ {
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			c.Set(key, "value", DefaultTTL)
		}()
		go func() {
			defer wg.Done()
			<-start
			Get[string](c, key)
		}()
		close(start)
		wg.Wait()

		c.Invalidate("card_")
		if _, ok := Get[string](c, key); ok {
			t.Fatalf("iteration %d: entry survived invalidation after a racing set", i)
		}
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := newTestCache(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := KeyCardByID("card")
			for j := 0; j < 100; j++ {
				c.Set(key, n, DefaultTTL)
				Get[int](c, key)
				if j%10 == 0 {
					c.Invalidate("card_")
				}
			}
		}(i)
	}
	wg.Wait()
}

package room

import (
	"fmt"
	"sync"
	"testing"
)

func TestStore(t *testing.T) {
	t.Run("get returns registered room", func(t *testing.T) {
		store := NewStore()
		store.Put(New("ABC123", 4))

		r, ok := store.Get("ABC123")
		if !ok {
			t.Fatal("Expected room to be found")
		}
		if r.ID != "ABC123" {
			t.Errorf("Expected room ID 'ABC123', got '%s'", r.ID)
		}
	})

	t.Run("get unknown id", func(t *testing.T) {
		store := NewStore()
		if _, ok := store.Get("nope"); ok {
			t.Error("Expected unknown id not to be found")
		}
	})

	t.Run("delete removes the room", func(t *testing.T) {
		store := NewStore()
		store.Put(New("ABC123", 4))
		store.Delete("ABC123")
		if _, ok := store.Get("ABC123"); ok {
			t.Error("Expected room to be gone after delete")
		}
		if store.Count() != 0 {
			t.Errorf("Expected count 0, got %d", store.Count())
		}
	})

	t.Run("delete unknown id is a no-op", func(t *testing.T) {
		store := NewStore()
		store.Delete("nope")
	})

	t.Run("list and count", func(t *testing.T) {
		store := NewStore()
		store.Put(New("A", 4))
		store.Put(New("B", 4))
		store.Put(New("C", 4))

		if store.Count() != 3 {
			t.Errorf("Expected count 3, got %d", store.Count())
		}
		if got := len(store.List()); got != 3 {
			t.Errorf("Expected 3 rooms listed, got %d", got)
		}
	})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("room-%d", n)
			store.Put(New(id, 4))
			store.Get(id)
			store.List()
			store.Count()
		}(i)
	}
	wg.Wait()

	if store.Count() != 10 {
		t.Errorf("Expected 10 rooms, got %d", store.Count())
	}
}

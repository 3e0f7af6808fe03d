package identity_test

import (
	"sync"
	"testing"

	"slaved/internal/identity"
)

func TestStoreStartsUnregistered(t *testing.T) {
	s := identity.NewStore()
	if s.Registered() {
		t.Fatal("new store must not be registered")
	}
	if s.Current() != identity.Unregistered {
		t.Fatalf("unexpected initial id: %d", s.Current())
	}
}

func TestAssignTransitionsOnce(t *testing.T) {
	s := identity.NewStore()
	if s.Assign(-5) {
		t.Fatal("negative id must be rejected")
	}
	if !s.Assign(7) {
		t.Fatal("first assignment should succeed")
	}
	if s.Assign(9) {
		t.Fatal("second assignment should be rejected")
	}
	if s.Current() != 7 {
		t.Fatalf("unexpected id: %d", s.Current())
	}
}

func TestAssignIsRaceSafe(t *testing.T) {
	s := identity.NewStore()
	var wg sync.WaitGroup
	wins := make(chan int64, 16)
	for i := int64(0); i < 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if s.Assign(id) {
				wins <- id
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []int64
	for id := range wins {
		winners = append(winners, id)
	}
	if len(winners) != 1 {
		t.Fatalf("expected exactly one winning assignment, got %v", winners)
	}
	if s.Current() != winners[0] {
		t.Fatalf("store id %d does not match winner %d", s.Current(), winners[0])
	}
}

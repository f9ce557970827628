package memory

import (
	"testing"
	"time"
)

func TestConversationRepositoryAppendAndGet(t *testing.T) {
	repo := NewConversationRepository()

	_, found := repo.Get("missing")
	if found {
		t.Fatal("unknown session must not be found")
	}

	repo.Append("s1",
		Turn{Role: "user", Text: "question", CreatedAt: time.Now()},
		Turn{Role: "assistant", Text: "answer", CreatedAt: time.Now()},
	)
	repo.Append("s1", Turn{Role: "user", Text: "follow up", CreatedAt: time.Now()})

	turns, found := repo.Get("s1")
	if !found {
		t.Fatal("session s1 must be found")
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	if turns[0].Text != "question" || turns[2].Text != "follow up" {
		t.Errorf("turn order not preserved: %+v", turns)
	}
}

func TestConversationRepositorySessionsAreIsolated(t *testing.T) {
	repo := NewConversationRepository()

	repo.Append("a", Turn{Role: "user", Text: "for a"})
	repo.Append("b", Turn{Role: "user", Text: "for b"})

	turnsA, _ := repo.Get("a")
	turnsB, _ := repo.Get("b")
	if len(turnsA) != 1 || len(turnsB) != 1 {
		t.Fatalf("sessions leaked into each other: a=%d b=%d", len(turnsA), len(turnsB))
	}
	if turnsA[0].Text == turnsB[0].Text {
		t.Error("sessions returned identical turns")
	}

	repo.Delete("a")
	if _, found := repo.Get("a"); found {
		t.Error("deleted session must not be found")
	}
	if _, found := repo.Get("b"); !found {
		t.Error("deleting one session must not affect another")
	}
}

package repository

import (
	"context"
	"errors"
	"testing"

	"professor-registry/internal/domain/professor"
)

// testRepositoryContract runs the behaviour every professor.Repository must share
func testRepositoryContract(t *testing.T, repo professor.Repository) {
	ctx := context.Background()

	t.Run("InsertThenGet", func(t *testing.T) {
		created, err := repo.Insert(ctx, &professor.Professor{FirstName: "Ada", LastName: "Lovelace"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if created.ID == 0 {
			t.Fatal("Expected an assigned ID, got 0")
		}

		found, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if found == nil {
			t.Fatal("Expected professor to be found, got nil")
		}

		if found.FirstName != "Ada" || found.LastName != "Lovelace" {
			t.Errorf("Expected Ada Lovelace, got %s", found.FullName())
		}
	})

	t.Run("InsertIgnoresID", func(t *testing.T) {
		created, err := repo.Insert(ctx, &professor.Professor{ID: 999999, FirstName: "Alan", LastName: "Turing"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if created.ID == 999999 {
			t.Error("Expected ID to be assigned by the store")
		}
	})

	t.Run("GetAllContainsInserted", func(t *testing.T) {
		names := []string{"Hopper", "Liskov", "Knuth"}
		ids := make(map[uint]string)
		for _, name := range names {
			p, err := repo.Insert(ctx, &professor.Professor{FirstName: "Prof", LastName: name})
			if err != nil {
				t.Fatalf("Failed to insert %s: %v", name, err)
			}
			ids[p.ID] = name
		}

		all, err := repo.GetAll(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(all) < len(names) {
			t.Fatalf("Expected at least %d professors, got %d", len(names), len(all))
		}

		for _, p := range all {
			if name, ok := ids[p.ID]; ok {
				if p.LastName != name {
					t.Errorf("Expected last name %s for ID %d, got %s", name, p.ID, p.LastName)
				}
				delete(ids, p.ID)
			}
		}

		if len(ids) != 0 {
			t.Errorf("Expected all inserted professors in listing, missing %v", ids)
		}
	})

	t.Run("UpdateChangesOnlyGivenFields", func(t *testing.T) {
		created, err := repo.Insert(ctx, &professor.Professor{FirstName: "Edsger", LastName: "Dijkstra"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		lastName := "X"
		updated, err := repo.Update(ctx, created.ID, professor.UpdateProfessorRequest{LastName: &lastName})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if updated.ID != created.ID {
			t.Errorf("Expected ID %d, got %d", created.ID, updated.ID)
		}

		if updated.FirstName != "Edsger" {
			t.Errorf("Expected first name unchanged, got %s", updated.FirstName)
		}

		if updated.LastName != "X" {
			t.Errorf("Expected last name X, got %s", updated.LastName)
		}

		found, err := repo.Get(ctx, created.ID)
		if err != nil || found == nil {
			t.Fatalf("Expected professor after update, got %v, %v", found, err)
		}

		if found.LastName != "X" || found.FirstName != "Edsger" {
			t.Errorf("Expected stored Edsger X, got %s", found.FullName())
		}
	})

	t.Run("UpdateWithNoChanges", func(t *testing.T) {
		created, err := repo.Insert(ctx, &professor.Professor{FirstName: "Barbara", LastName: "Liskov"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		updated, err := repo.Update(ctx, created.ID, professor.UpdateProfessorRequest{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if updated.FullName() != "Barbara Liskov" {
			t.Errorf("Expected Barbara Liskov, got %s", updated.FullName())
		}
	})

	t.Run("UpdateMissingIsNotFound", func(t *testing.T) {
		name := "Nobody"
		_, err := repo.Update(ctx, 424242, professor.UpdateProfessorRequest{FirstName: &name})
		if !errors.Is(err, professor.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}

		if errors.Is(err, professor.ErrUpdate) {
			t.Error("Expected not found to be distinct from update error")
		}
	})

	t.Run("DeleteMissingIsNotFound", func(t *testing.T) {
		err := repo.Delete(ctx, 424242)
		if !errors.Is(err, professor.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteThenGetIsAbsent", func(t *testing.T) {
		created, err := repo.Insert(ctx, &professor.Professor{FirstName: "Ken", LastName: "Thompson"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		found, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if found != nil {
			t.Errorf("Expected nil after delete, got %+v", found)
		}

		if err := repo.Delete(ctx, created.ID); !errors.Is(err, professor.ErrNotFound) {
			t.Errorf("Expected second delete to be not found, got %v", err)
		}
	})

	t.Run("IDsBeyondInt32AreAbsent", func(t *testing.T) {
		const id = 3000000000

		found, err := repo.Get(ctx, id)
		if err != nil || found != nil {
			t.Fatalf("Expected nil, nil, got %+v, %v", found, err)
		}

		name := "Nobody"
		if _, err := repo.Update(ctx, id, professor.UpdateProfessorRequest{FirstName: &name}); !errors.Is(err, professor.ErrNotFound) {
			t.Errorf("Expected ErrNotFound from update, got %v", err)
		}

		if err := repo.Delete(ctx, id); !errors.Is(err, professor.ErrNotFound) {
			t.Errorf("Expected ErrNotFound from delete, got %v", err)
		}
	})

	t.Run("GetMissingIsAbsent", func(t *testing.T) {
		found, err := repo.Get(ctx, 424242)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if found != nil {
			t.Errorf("Expected nil, got %+v", found)
		}
	})
}

// testEventRepositoryContract runs the behaviour every professor.EventRepository must share
func testEventRepositoryContract(t *testing.T, professors professor.Repository, events professor.EventRepository) {
	ctx := context.Background()

	t.Run("ProfessorWithoutEvents", func(t *testing.T) {
		p, err := professors.Insert(ctx, &professor.Professor{FirstName: "Niklaus", LastName: "Wirth"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		result, err := events.GetProfessorWithEvents(ctx, p.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if result == nil {
			t.Fatal("Expected professor, got nil")
		}

		if result.FullName() != "Niklaus Wirth" {
			t.Errorf("Expected Niklaus Wirth, got %s", result.FullName())
		}

		if result.Events == nil || len(result.Events) != 0 {
			t.Errorf("Expected empty events slice, got %v", result.Events)
		}
	})

	t.Run("CreateListAndJoin", func(t *testing.T) {
		p, err := professors.Insert(ctx, &professor.Professor{FirstName: "John", LastName: "McCarthy"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		for _, title := range []string{"Lecture", "Seminar"} {
			e, err := events.Create(ctx, &professor.Event{ProfessorID: p.ID, Title: title})
			if err != nil {
				t.Fatalf("Failed to create event %s: %v", title, err)
			}
			if e.ID == 0 || e.ProfessorID != p.ID {
				t.Errorf("Unexpected event %+v", e)
			}
		}

		list, err := events.ListByProfessor(ctx, p.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(list) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(list))
		}

		result, err := events.GetProfessorWithEvents(ctx, p.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(result.Events) != 2 {
			t.Fatalf("Expected 2 joined events, got %d", len(result.Events))
		}

		if result.Events[0].Title != "Lecture" || result.Events[1].Title != "Seminar" {
			t.Errorf("Expected Lecture then Seminar, got %s then %s", result.Events[0].Title, result.Events[1].Title)
		}
	})

	t.Run("EventForMissingProfessorFails", func(t *testing.T) {
		_, err := events.Create(ctx, &professor.Event{ProfessorID: 424242, Title: "Orphan"})
		if !errors.Is(err, professor.ErrCreation) {
			t.Fatalf("Expected ErrCreation, got %v", err)
		}
	})

	t.Run("MissingProfessorWithEventsIsAbsent", func(t *testing.T) {
		result, err := events.GetProfessorWithEvents(ctx, 424242)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if result != nil {
			t.Errorf("Expected nil, got %+v", result)
		}
	})

	t.Run("DeleteEvent", func(t *testing.T) {
		p, err := professors.Insert(ctx, &professor.Professor{FirstName: "Donald", LastName: "Knuth"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		e, err := events.Create(ctx, &professor.Event{ProfessorID: p.ID, Title: "Christmas lecture"})
		if err != nil {
			t.Fatalf("Failed to create event: %v", err)
		}

		if err := events.Delete(ctx, p.ID+1, e.ID); !errors.Is(err, professor.ErrNotFound) {
			t.Errorf("Expected not found for wrong professor, got %v", err)
		}

		if err := events.Delete(ctx, p.ID, e.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if err := events.Delete(ctx, p.ID, e.ID); !errors.Is(err, professor.ErrNotFound) {
			t.Errorf("Expected not found on second delete, got %v", err)
		}
	})

	t.Run("DeletingProfessorRemovesEvents", func(t *testing.T) {
		p, err := professors.Insert(ctx, &professor.Professor{FirstName: "Frances", LastName: "Allen"})
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		if _, err := events.Create(ctx, &professor.Event{ProfessorID: p.ID, Title: "Talk"}); err != nil {
			t.Fatalf("Failed to create event: %v", err)
		}

		if err := professors.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		list, err := events.ListByProfessor(ctx, p.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(list) != 0 {
			t.Errorf("Expected events to be removed with professor, got %d", len(list))
		}
	})
}

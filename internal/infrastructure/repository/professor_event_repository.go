package repository

import (
	"context"
	"time"

	"professor-registry/internal/domain/professor"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var _ professor.EventRepository = (*ProfessorEventRepository)(nil)

// ProfessorEventRepository reads and writes professor_events with plain SQL.
// The professor relationship is resolved with an explicit join, never lazily.
type ProfessorEventRepository struct {
	db  *sqlx.DB
	log logrus.FieldLogger
}

func NewProfessorEventRepository(db *sqlx.DB, log logrus.FieldLogger) *ProfessorEventRepository {
	return &ProfessorEventRepository{
		db:  db,
		log: log.WithField("component", "professor_event_repository"),
	}
}

func (r *ProfessorEventRepository) Create(ctx context.Context, event *professor.Event) (*professor.Event, error) {
	if !storableID(event.ProfessorID) {
		return nil, professor.CreationError(professor.EntityEvent, foreignKeyViolation(event.ProfessorID))
	}

	const query = `
		INSERT INTO professor_events (professor_id, title, starts_at, ends_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, professor_id, title, starts_at, ends_at, created_at, updated_at`

	var created professor.Event
	err := r.db.GetContext(ctx, &created, query, event.ProfessorID, event.Title, event.StartsAt, event.EndsAt)
	if err != nil {
		return nil, professor.CreationError(professor.EntityEvent, err)
	}

	r.log.WithFields(logrus.Fields{
		"id":           created.ID,
		"professor_id": created.ProfessorID,
		"title":        created.Title,
	}).Info("Professor event created successfully")

	return &created, nil
}

func (r *ProfessorEventRepository) ListByProfessor(ctx context.Context, professorID uint) ([]professor.Event, error) {
	if !storableID(professorID) {
		return []professor.Event{}, nil
	}

	const query = `
		SELECT id, professor_id, title, starts_at, ends_at, created_at, updated_at
		FROM professor_events
		WHERE professor_id = $1
		ORDER BY starts_at NULLS LAST, id`

	events := []professor.Event{}
	if err := r.db.SelectContext(ctx, &events, query, professorID); err != nil {
		return nil, professor.RetrievalError(professor.EntityEvents, professorID, err)
	}

	r.log.WithFields(logrus.Fields{
		"professor_id": professorID,
		"count":        len(events),
	}).Debug("Retrieved professor events")

	return events, nil
}

// professorEventRow is one row of the professors LEFT JOIN professor_events query.
// Event columns are NULL for a professor without events.
type professorEventRow struct {
	ID             uint       `db:"id"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	EventID        *uint      `db:"event_id"`
	EventTitle     *string    `db:"event_title"`
	EventStartsAt  *time.Time `db:"event_starts_at"`
	EventEndsAt    *time.Time `db:"event_ends_at"`
	EventCreatedAt *time.Time `db:"event_created_at"`
	EventUpdatedAt *time.Time `db:"event_updated_at"`
}

func (r *ProfessorEventRepository) GetProfessorWithEvents(ctx context.Context, professorID uint) (*professor.WithEvents, error) {
	if !storableID(professorID) {
		return nil, nil
	}

	const query = `
		SELECT p.id, p.first_name, p.last_name, p.created_at, p.updated_at,
			e.id AS event_id, e.title AS event_title,
			e.starts_at AS event_starts_at, e.ends_at AS event_ends_at,
			e.created_at AS event_created_at, e.updated_at AS event_updated_at
		FROM professors p
		LEFT JOIN professor_events e ON e.professor_id = p.id
		WHERE p.id = $1
		ORDER BY e.starts_at NULLS LAST, e.id`

	var rows []professorEventRow
	if err := r.db.SelectContext(ctx, &rows, query, professorID); err != nil {
		return nil, professor.RetrievalError(professor.EntityProfessor, professorID, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	result := assembleWithEvents(rows)

	r.log.WithFields(logrus.Fields{
		"id":     result.ID,
		"events": len(result.Events),
	}).Info("Retrieved professor with events")

	return result, nil
}

func assembleWithEvents(rows []professorEventRow) *professor.WithEvents {
	first := rows[0]
	result := &professor.WithEvents{
		Professor: professor.Professor{
			ID:        first.ID,
			FirstName: first.FirstName,
			LastName:  first.LastName,
			CreatedAt: first.CreatedAt,
			UpdatedAt: first.UpdatedAt,
		},
		Events: []professor.Event{},
	}

	for _, row := range rows {
		if row.EventID == nil {
			continue
		}

		event := professor.Event{
			ID:          *row.EventID,
			ProfessorID: row.ID,
			StartsAt:    row.EventStartsAt,
			EndsAt:      row.EventEndsAt,
		}
		if row.EventTitle != nil {
			event.Title = *row.EventTitle
		}
		if row.EventCreatedAt != nil {
			event.CreatedAt = *row.EventCreatedAt
		}
		if row.EventUpdatedAt != nil {
			event.UpdatedAt = *row.EventUpdatedAt
		}
		result.Events = append(result.Events, event)
	}

	return result
}

func (r *ProfessorEventRepository) Delete(ctx context.Context, professorID, eventID uint) error {
	if !storableID(professorID) || !storableID(eventID) {
		return professor.NotFoundError(professor.EntityEvent, eventID)
	}

	const query = `DELETE FROM professor_events WHERE id = $1 AND professor_id = $2`

	res, err := r.db.ExecContext(ctx, query, eventID, professorID)
	if err != nil {
		return professor.DeletionError(professor.EntityEvent, eventID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return professor.DeletionError(professor.EntityEvent, eventID, err)
	}

	if affected == 0 {
		return professor.NotFoundError(professor.EntityEvent, eventID)
	}

	r.log.WithFields(logrus.Fields{
		"id":           eventID,
		"professor_id": professorID,
	}).Info("Professor event deleted successfully")

	return nil
}

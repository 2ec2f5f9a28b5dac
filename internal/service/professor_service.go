package service

import (
	"context"

	"professor-registry/internal/domain/professor"

	"github.com/sirupsen/logrus"
)

// professorService implements the professor.Service interface
type professorService struct {
	professorRepo professor.Repository
	eventRepo     professor.EventRepository
	log           logrus.FieldLogger
}

// NewProfessorService creates a new professor service
func NewProfessorService(professorRepo professor.Repository, eventRepo professor.EventRepository, log logrus.FieldLogger) professor.Service {
	return &professorService{
		professorRepo: professorRepo,
		eventRepo:     eventRepo,
		log:           log.WithField("component", "professor_service"),
	}
}

// ListProfessors retrieves every professor
func (s *professorService) ListProfessors(ctx context.Context) ([]*professor.Professor, error) {
	professors, err := s.professorRepo.GetAll(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to list professors")
		return nil, err
	}

	return professors, nil
}

// GetProfessor retrieves a professor by ID. An absent professor is a NotFoundError.
func (s *professorService) GetProfessor(ctx context.Context, id uint) (*professor.Professor, error) {
	s.log.WithField("id", id).Debug("Getting professor")

	p, err := s.professorRepo.Get(ctx, id)
	if err != nil {
		s.log.WithError(err).Error("Failed to get professor")
		return nil, err
	}

	if p == nil {
		return nil, professor.NotFoundError(professor.EntityProfessor, id)
	}

	return p, nil
}

// CreateProfessor creates a new professor
func (s *professorService) CreateProfessor(ctx context.Context, req *professor.CreateProfessorRequest) (*professor.Professor, error) {
	s.log.WithFields(logrus.Fields{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}).Debug("Creating professor")

	p, err := s.professorRepo.Insert(ctx, &professor.Professor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to create professor")
		return nil, err
	}

	return p, nil
}

// UpdateProfessor applies a partial update
func (s *professorService) UpdateProfessor(ctx context.Context, id uint, req *professor.UpdateProfessorRequest) (*professor.Professor, error) {
	s.log.WithField("id", id).Debug("Updating professor")

	p, err := s.professorRepo.Update(ctx, id, *req)
	if err != nil {
		s.logFailure(err, "Failed to update professor")
		return nil, err
	}

	return p, nil
}

// DeleteProfessor deletes a professor together with its events
func (s *professorService) DeleteProfessor(ctx context.Context, id uint) error {
	s.log.WithField("id", id).Debug("Deleting professor")

	if err := s.professorRepo.Delete(ctx, id); err != nil {
		s.logFailure(err, "Failed to delete professor")
		return err
	}

	return nil
}

func (s *professorService) GetProfessorWithEvents(ctx context.Context, id uint) (*professor.WithEvents, error) {
	result, err := s.eventRepo.GetProfessorWithEvents(ctx, id)
	if err != nil {
		s.log.WithError(err).Error("Failed to get professor with events")
		return nil, err
	}

	if result == nil {
		return nil, professor.NotFoundError(professor.EntityProfessor, id)
	}

	return result, nil
}

func (s *professorService) ListProfessorEvents(ctx context.Context, professorID uint) ([]professor.Event, error) {
	if _, err := s.GetProfessor(ctx, professorID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByProfessor(ctx, professorID)
	if err != nil {
		s.log.WithError(err).Error("Failed to list professor events")
		return nil, err
	}

	return events, nil
}

func (s *professorService) CreateProfessorEvent(ctx context.Context, professorID uint, req *professor.CreateEventRequest) (*professor.Event, error) {
	s.log.WithFields(logrus.Fields{
		"professor_id": professorID,
		"title":        req.Title,
	}).Debug("Creating professor event")

	event, err := s.eventRepo.Create(ctx, &professor.Event{
		ProfessorID: professorID,
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to create professor event")
		return nil, err
	}

	return event, nil
}

func (s *professorService) DeleteProfessorEvent(ctx context.Context, professorID, eventID uint) error {
	if err := s.eventRepo.Delete(ctx, professorID, eventID); err != nil {
		s.logFailure(err, "Failed to delete professor event")
		return err
	}

	return nil
}

// logFailure logs not-found at debug level since it is a caller error
func (s *professorService) logFailure(err error, msg string) {
	if professor.IsNotFound(err) {
		s.log.WithError(err).Debug(msg)
		return
	}
	s.log.WithError(err).Error(msg)
}

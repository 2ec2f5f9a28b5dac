package repository

import (
	"context"
	"errors"

	"professor-registry/internal/domain/professor"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var _ professor.Repository = (*ProfessorRepository)(nil)

// ProfessorRepository implements professor.Repository using GORM.
// Every store failure is returned as a *professor.Error wrapping the driver error.
type ProfessorRepository struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewProfessorRepository(db *gorm.DB, log logrus.FieldLogger) *ProfessorRepository {
	return &ProfessorRepository{
		db:  db,
		log: log.WithField("component", "professor_repository"),
	}
}

func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*professor.Professor, error) {
	professors := []*professor.Professor{}
	err := r.db.WithContext(ctx).Order("id").Find(&professors).Error
	if err != nil {
		return nil, professor.RetrievalError(professor.EntityProfessors, 0, err)
	}

	for _, p := range professors {
		r.log.WithFields(professorFields(p)).Debug("Professor listed")
	}
	r.log.WithField("count", len(professors)).Info("Retrieved all professors")

	return professors, nil
}

func (r *ProfessorRepository) Get(ctx context.Context, id uint) (*professor.Professor, error) {
	if !storableID(id) {
		return nil, nil
	}

	var p professor.Professor
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.WithField("id", id).Debug("Professor not found")
			return nil, nil
		}
		return nil, professor.RetrievalError(professor.EntityProfessor, id, err)
	}

	r.log.WithFields(professorFields(&p)).Info("Retrieved professor")
	return &p, nil
}

func (r *ProfessorRepository) Insert(ctx context.Context, data *professor.Professor) (*professor.Professor, error) {
	p := &professor.Professor{
		FirstName: data.FirstName,
		LastName:  data.LastName,
	}

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, professor.CreationError(professor.EntityProfessor, err)
	}

	r.log.WithFields(professorFields(p)).Info("Professor created successfully")
	return p, nil
}

func (r *ProfessorRepository) Update(ctx context.Context, id uint, changes professor.UpdateProfessorRequest) (*professor.Professor, error) {
	if !storableID(id) {
		return nil, professor.NotFoundError(professor.EntityProfessor, id)
	}

	result := r.db.WithContext(ctx).
		Model(&professor.Professor{}).
		Where("id = ?", id).
		Updates(changes.Columns())
	if result.Error != nil {
		return nil, professor.UpdateError(professor.EntityProfessor, id, result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, professor.NotFoundError(professor.EntityProfessor, id)
	}

	var updated professor.Professor
	err := r.db.WithContext(ctx).First(&updated, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, professor.NotFoundError(professor.EntityProfessor, id)
		}
		return nil, professor.UpdateError(professor.EntityProfessor, id, err)
	}

	r.log.WithFields(professorFields(&updated)).Info("Professor updated successfully")
	return &updated, nil
}

func (r *ProfessorRepository) Delete(ctx context.Context, id uint) error {
	if !storableID(id) {
		return professor.NotFoundError(professor.EntityProfessor, id)
	}

	result := r.db.WithContext(ctx).Delete(&professor.Professor{}, id)
	if result.Error != nil {
		return professor.DeletionError(professor.EntityProfessor, id, result.Error)
	}

	if result.RowsAffected == 0 {
		return professor.NotFoundError(professor.EntityProfessor, id)
	}

	r.log.WithField("id", id).Info("Professor deleted successfully")
	return nil
}

func professorFields(p *professor.Professor) logrus.Fields {
	return logrus.Fields{
		"id":         p.ID,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
	}
}

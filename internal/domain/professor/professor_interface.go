package professor

import "context"

// Repository defines the interface for professor data access.
// Get returns (nil, nil) when no professor has the given id.
type Repository interface {
	GetAll(ctx context.Context) ([]*Professor, error)
	Get(ctx context.Context, id uint) (*Professor, error)
	Insert(ctx context.Context, data *Professor) (*Professor, error)
	Update(ctx context.Context, id uint, changes UpdateProfessorRequest) (*Professor, error)
	Delete(ctx context.Context, id uint) error
}

// EventRepository defines the interface for professor event data access
type EventRepository interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	ListByProfessor(ctx context.Context, professorID uint) ([]Event, error)
	GetProfessorWithEvents(ctx context.Context, professorID uint) (*WithEvents, error)
	Delete(ctx context.Context, professorID, eventID uint) error
}

// Service defines the interface for professor business logic
type Service interface {
	ListProfessors(ctx context.Context) ([]*Professor, error)
	GetProfessor(ctx context.Context, id uint) (*Professor, error)
	CreateProfessor(ctx context.Context, req *CreateProfessorRequest) (*Professor, error)
	UpdateProfessor(ctx context.Context, id uint, req *UpdateProfessorRequest) (*Professor, error)
	DeleteProfessor(ctx context.Context, id uint) error

	GetProfessorWithEvents(ctx context.Context, id uint) (*WithEvents, error)
	ListProfessorEvents(ctx context.Context, professorID uint) ([]Event, error)
	CreateProfessorEvent(ctx context.Context, professorID uint, req *CreateEventRequest) (*Event, error)
	DeleteProfessorEvent(ctx context.Context, professorID, eventID uint) error
}

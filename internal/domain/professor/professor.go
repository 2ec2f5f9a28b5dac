package professor

import (
	"time"
)

// Professor represents a professor record
type Professor struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string    `json:"first_name" db:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" db:"last_name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

func (Professor) TableName() string {
	return "professors"
}

// FullName returns the full name of the professor
func (p *Professor) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Event is a record owned by a professor through professor_id.
// The relationship is enforced by a foreign key and read with an explicit join.
type Event struct {
	ID          uint       `json:"id" db:"id"`
	ProfessorID uint       `json:"professor_id" db:"professor_id"`
	Title       string     `json:"title" db:"title"`
	StartsAt    *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// WithEvents is a professor together with all of its events
type WithEvents struct {
	Professor
	Events []Event `json:"events"`
}

// CreateProfessorRequest represents the request to create a professor
type CreateProfessorRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
}

// UpdateProfessorRequest represents a partial update. Nil fields are left unchanged.
type UpdateProfessorRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
}

// Columns returns the column updates carried by the request
func (r UpdateProfessorRequest) Columns() map[string]any {
	columns := make(map[string]any)
	if r.FirstName != nil {
		columns["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		columns["last_name"] = *r.LastName
	}
	return columns
}

// Apply copies the non-nil fields onto p
func (r UpdateProfessorRequest) Apply(p *Professor) {
	if r.FirstName != nil {
		p.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		p.LastName = *r.LastName
	}
}

// CreateEventRequest represents the request to attach an event to a professor
type CreateEventRequest struct {
	Title    string     `json:"title" validate:"required,min=1,max=255"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

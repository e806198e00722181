package entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Consultant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ConsultantRepository interface {
	Create(ctx context.Context, c *Consultant) error
	FindByID(ctx context.Context, id string) (*Consultant, error)
	List(ctx context.Context) ([]Consultant, error)
	Update(ctx context.Context, c *Consultant) error
	Delete(ctx context.Context, id string) error
}

func NewConsultant(name, email, phone string) (*Consultant, error) {
	now := time.Now()
	c := &Consultant{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Consultant) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	return nil
}

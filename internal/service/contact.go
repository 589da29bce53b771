package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactListResult is the service-level DTO for paginated submissions.
type ContactListResult struct {
	Items []model.Contact `json:"data"`
	Total int             `json:"total"`
}

// ContactService defines contact form use cases.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.Contact, error)
	List(ctx context.Context, limit, offset int) (*ContactListResult, error)
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService constructs a ContactService.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.Contact, error) {
	c := &model.Contact{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Message:     in.Message,
		SubmittedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, c)
}

func (s *contactService) List(ctx context.Context, limit, offset int) (*ContactListResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Items: res.Items, Total: res.Total}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/google/uuid"
)

type subjectService struct {
	subjects repository.SubjectRepo
}

func NewSubjectService(subjects repository.SubjectRepo) SubjectService {
	return &subjectService{subjects: subjects}
}

func (s *subjectService) Create(ctx context.Context, name string) (*domain.Subject, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return nil, &app.RequestError{Code: app.ErrCodeInvalidInput, Message: "subject name is required"}
	}
	if _, err := s.subjects.GetByName(ctx, name); err == nil {
		return nil, &app.RequestError{Code: app.ErrCodeInvalidInput, Message: fmt.Sprintf("subject %q already exists", name)}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	subject := &domain.Subject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Ensure(ctx context.Context, name string) (*domain.Subject, error) {
	existing, err := s.subjects.GetByName(ctx, strings.Join(strings.Fields(name), " "))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, name)
}

func (s *subjectService) List(ctx context.Context) ([]*domain.Subject, error) {
	return s.subjects.List(ctx)
}

package services

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotel-booking/models"
	"hotel-booking/repository"
)

// ContactService stores inquiries sent from the contact page.
type ContactService struct {
	Repo      repository.Repository
	Validator *Validator
	Logger    log.Logger
}

func NewContactService(repo repository.Repository, v *Validator, logger log.Logger) *ContactService {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &ContactService{Repo: repo, Validator: v, Logger: log.With(logger, "component", "contact")}
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactInquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	ve := &ValidationError{}
	s.Validator.Struct(ve, in)
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	inquiry := &models.ContactInquiry{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if in.Phone != "" {
		phone := in.Phone
		inquiry.Phone = &phone
	}

	if err := s.Repo.CreateContactInquiry(ctx, inquiry); err != nil {
		return nil, err
	}
	level.Info(s.Logger).Log("msg", "contact inquiry stored", "inquiry", inquiry.ID, "subject", inquiry.Subject)
	return inquiry, nil
}

// Package registration stores the academy sign-up requests sent by parents.
package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/metrics"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

const (
	Collection    = "registrations"
	StatusPending = "pending"
)

// FlexString decodes a JSON string or number (childAge is sent either way).
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("childAge must be a string or a number: %w", err)
		}
		*f = FlexString(n.String())
		return nil
	}
}

// Request is the public registration form.
type Request struct {
	ParentName   string     `json:"parentName"`
	ChildName    string     `json:"childName"`
	ChildAge     FlexString `json:"childAge"`
	ContactEmail string     `json:"contactEmail"`
	ContactPhone string     `json:"contactPhone"`
	MedicalInfo  string     `json:"medicalInfo"`
}

// Validate requires every field but medicalInfo and checks the email shape.
func (r Request) Validate() error {
	if err := domain.RequireFields(Collection,
		domain.Field{Name: "parentName", Value: r.ParentName},
		domain.Field{Name: "childName", Value: r.ChildName},
		domain.Field{Name: "childAge", Value: string(r.ChildAge)},
		domain.Field{Name: "contactEmail", Value: r.ContactEmail},
		domain.Field{Name: "contactPhone", Value: r.ContactPhone},
	); err != nil {
		return err
	}
	if !domain.ValidEmail(r.ContactEmail) {
		return &domain.ValidationError{Kind: Collection, Field: "contactEmail", Reason: "invalid"}
	}
	return nil
}

// Registration is the stored document.
type Registration struct {
	ParentName   string    `json:"parentName"`
	ChildName    string    `json:"childName"`
	ChildAge     string    `json:"childAge"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	MedicalInfo  string    `json:"medicalInfo"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Service struct {
	store  store.DocumentStore
	logger logger.Logger
	now    func() time.Time
}

// NewService returns a registration service. s may be nil when storage is
// not configured.
func NewService(s store.DocumentStore, log logger.Logger) *Service {
	return &Service{store: s, logger: log, now: time.Now}
}

// Submit validates req and stores it as a pending registration.
func (s *Service) Submit(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordRegistration("invalid")
		return "", err
	}
	if s.store == nil {
		metrics.RecordRegistration("not_configured")
		s.logger.Error("registration rejected, storage not configured")
		return "", store.ErrNotConfigured
	}

	data, err := json.Marshal(Registration{
		ParentName:   strings.TrimSpace(req.ParentName),
		ChildName:    strings.TrimSpace(req.ChildName),
		ChildAge:     strings.TrimSpace(string(req.ChildAge)),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		MedicalInfo:  strings.TrimSpace(req.MedicalInfo),
		Status:       StatusPending,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		metrics.RecordRegistration("error")
		return "", err
	}

	id, err := s.store.Insert(ctx, Collection, data)
	if err != nil {
		metrics.RecordRegistration("error")
		s.logger.Error("failed to store registration", logger.Error(err))
		return "", fmt.Errorf("failed to store registration: %w", err)
	}

	metrics.RecordRegistration("created")
	s.logger.Info("registration received", logger.String("id", id))
	return id, nil
}

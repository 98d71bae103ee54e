// Package newsletter validates and submits newsletter subscriptions.
package newsletter

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/validation"
)

// User-facing messages.
const (
	MsgEmailRequired     = "Please enter your email address"
	MsgEmailInvalid      = "Please enter a valid email address"
	MsgSubscribed        = "Subscribed!"
	MsgAlreadySubscribed = "Email already exists"
	MsgFailed            = "Something wrong. Failed to subscribe"
)

var messages = validation.Messages{
	"email.required": MsgEmailRequired,
	"email.email":    MsgEmailInvalid,
}

// Subscriber submits an address to the API.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (string, error)
}

type form struct {
	Email string `json:"email" validate:"required,email"`
}

// Outcome is the result of a submission. FieldError is set when the input
// was rejected before any request; otherwise Message is shown as a toast.
type Outcome struct {
	OK         bool
	Message    string
	FieldError string
}

// Service handles the subscription form.
type Service struct {
	client    Subscriber
	validator *validation.Validator
	log       logrus.FieldLogger
}

// New builds a Service.
func New(client Subscriber, v *validation.Validator, log logrus.FieldLogger) *Service {
	if v == nil {
		v = validation.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{client: client, validator: v, log: log}
}

// Check returns the field error for email, or "" when it is acceptable.
func (s *Service) Check(email string) string {
	err := s.validator.Validate(form{Email: strings.TrimSpace(email)}, messages)
	if verr, ok := validation.AsError(err); ok {
		return verr.First()
	}
	return ""
}

// Submit validates email and subscribes it.
func (s *Service) Submit(ctx context.Context, email string) Outcome {
	email = strings.TrimSpace(email)
	if msg := s.Check(email); msg != "" {
		return Outcome{FieldError: msg}
	}

	msg, err := s.client.Subscribe(ctx, email)
	if err != nil {
		if catalog.IsConflict(err) {
			return Outcome{Message: MsgAlreadySubscribed}
		}
		s.log.WithError(err).Warn("subscribe failed")
		return Outcome{Message: catalog.MessageOf(err, MsgFailed)}
	}
	if strings.TrimSpace(msg) == "" {
		msg = MsgSubscribed
	}
	return Outcome{OK: true, Message: msg}
}

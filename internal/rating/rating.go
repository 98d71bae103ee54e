// Package rating validates and submits exercise ratings.
package rating

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/validation"
)

// User-facing messages.
const (
	MsgRateRequired   = "Please select a rating from 1 to 5"
	MsgEmailRequired  = "Please enter your email address"
	MsgEmailInvalid   = "Please enter a valid email address"
	MsgReviewRequired = "Please leave a comment"
	MsgThanks         = "Thank you for your rating!"
	MsgFailed         = "Failed to send rating. Please try again later."
)

var messages = validation.Messages{
	"rate.gte":        MsgRateRequired,
	"rate.lte":        MsgRateRequired,
	"email.required":  MsgEmailRequired,
	"email.email":     MsgEmailInvalid,
	"review.required": MsgReviewRequired,
}

// MaxRate is the highest rating.
const MaxRate = 5

// Rater submits a rating to the API.
type Rater interface {
	RateExercise(ctx context.Context, id string, rating catalog.Rating) (catalog.Exercise, error)
}

// Form is the rating input for one exercise.
type Form struct {
	ExerciseID string `json:"-"`
	Rate       int    `json:"rate" validate:"gte=1,lte=5"`
	Email      string `json:"email" validate:"required,email"`
	Review     string `json:"review" validate:"required"`
}

// Outcome is the result of a submission. Fields holds per-field messages
// when validation failed; otherwise Message is shown as a toast.
type Outcome struct {
	OK      bool
	Message string
	Fields  map[string]string
}

// Service handles the rating form.
type Service struct {
	client    Rater
	validator *validation.Validator
	log       logrus.FieldLogger
}

// New builds a Service.
func New(client Rater, v *validation.Validator, log logrus.FieldLogger) *Service {
	if v == nil {
		v = validation.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{client: client, validator: v, log: log}
}

// Check validates f and returns the message per failed field.
func (s *Service) Check(f Form) map[string]string {
	f = normalize(f)
	err := s.validator.Validate(f, messages)
	verr, ok := validation.AsError(err)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields[fe.Field] = fe.Message
	}
	return fields
}

// Submit validates f and sends it.
func (s *Service) Submit(ctx context.Context, f Form) Outcome {
	f = normalize(f)
	if fields := s.Check(f); len(fields) > 0 {
		return Outcome{Fields: fields}
	}

	_, err := s.client.RateExercise(ctx, f.ExerciseID, catalog.Rating{Rate: f.Rate, Email: f.Email, Review: f.Review})
	if err != nil {
		s.log.WithError(err).WithField("id", f.ExerciseID).Warn("rate exercise failed")
		return Outcome{Message: catalog.MessageOf(err, MsgFailed)}
	}
	return Outcome{OK: true, Message: MsgThanks}
}

func normalize(f Form) Form {
	f.ExerciseID = strings.TrimSpace(f.ExerciseID)
	f.Email = strings.TrimSpace(f.Email)
	f.Review = strings.TrimSpace(f.Review)
	return f
}

package forms

import (
	"errors"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// Status is where a form is in its submit lifecycle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Draft tracks one form submission. It is request-scoped and never shared.
type Draft[T Submission] struct {
	Value  T
	Errors map[string]string
	Status Status
	Saved  content.Entity
}

// NewDraft wraps a decoded payload.
func NewDraft[T Submission](v T) *Draft[T] {
	return &Draft[T]{Value: v, Status: StatusIdle}
}

// Submit runs save and records the outcome. Field errors from a
// *content.ValidationError are copied into Errors.
func (d *Draft[T]) Submit(save func(T) (content.Entity, error)) error {
	d.Status = StatusSubmitting
	d.Errors = nil

	saved, err := save(d.Value)
	if err != nil {
		d.Status = StatusError
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			d.Errors = verr.Fields
		}
		return err
	}
	d.Saved = saved
	d.Status = StatusSuccess
	return nil
}

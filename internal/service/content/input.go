package content

import (
	"time"

	"github.com/vecindario/backend/internal/domain"
)

// PublishNewsInput holds parameters for the news publication operation.
type PublishNewsInput struct {
	Title    string
	Summary  string
	Body     string
	Category domain.NewsCategory
}

// Validate validates the publish news input.
func (i PublishNewsInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.Summary == "" {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "required"})
	} else if len(i.Summary) > 500 {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "too long"})
	}

	if i.Category != "" && !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PublishNoticeInput holds parameters for the notice publication
// operation. A zero StartsAt means the notice takes effect immediately.
type PublishNoticeInput struct {
	Title    string
	Message  string
	Priority domain.NoticePriority
	StartsAt time.Time
	EndsAt   *time.Time
}

// Validate validates the publish notice input.
func (i PublishNoticeInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.Message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	} else if len(i.Message) > 2000 {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}

	if i.EndsAt != nil && !i.StartsAt.IsZero() && !i.EndsAt.After(i.StartsAt) {
		errs = append(errs, domain.FieldError{Field: "ends_at", Message: "must be after starts_at"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DraftRecord is a Form persisted between requests.
type DraftRecord struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	OriginalID uuid.UUID `json:"original_id"`
	Draft      Draft     `json:"draft"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *DraftRecord) Form() *Form {
	return RestoreForm(r.OriginalID, r.Draft)
}

// Apply copies the form state back into the record.
func (r *DraftRecord) Apply(f *Form, now time.Time) {
	r.Draft = f.Draft()
	r.UpdatedAt = now
}

type DraftRepository interface {
	Save(ctx context.Context, r *DraftRecord) error
	// FindByID returns an apperror not-found when the draft is missing or expired.
	FindByID(ctx context.Context, id uuid.UUID) (*DraftRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

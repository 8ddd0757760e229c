package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrInvalidCursor       = errs.New("invalid pagination cursor")
)

// AppointmentReadStore is the read-side port implemented by the pgx
// read store.
type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*AppointmentView, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit int, after *PageCursor) ([]*AppointmentView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	ListByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*AppointmentView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int, after string) ([]*AppointmentView, string, error)
}

type appointmentQueriesImpl struct {
	store AppointmentReadStore
}

func NewAppointmentQueries(store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{store: store}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Wrap(err, "failed to find appointment")
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListByStaffDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*AppointmentView, error) {
	views, err := q.store.FindByStaffDate(ctx, staffID, date)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list staff appointments")
	}
	return views, nil
}

// ListByCustomer pages through a customer's booking history newest
// first. The returned cursor is empty on the last page.
func (q *appointmentQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int, after string) ([]*AppointmentView, string, error) {
	limit = ValidateLimit(limit)

	var cursor *PageCursor
	if after != "" {
		createdAt, id, err := DecodeAfterCursor(after)
		if err != nil {
			return nil, "", errs.Mark(err, ErrInvalidCursor)
		}
		cursor = &PageCursor{CreatedAt: createdAt, ID: id}
	}

	// Fetch one extra row to detect whether another page exists.
	views, err := q.store.FindByCustomer(ctx, customerID, limit+1, cursor)
	if err != nil {
		return nil, "", errs.Wrap(err, "failed to list customer appointments")
	}

	next := ""
	if len(views) > limit {
		views = views[:limit]
		last := views[limit-1]
		next = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	return views, next, nil
}

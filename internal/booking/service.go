package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/turfbook/ground-booking-backend/internal/ground"
	"github.com/turfbook/ground-booking-backend/internal/notify"
	"github.com/turfbook/ground-booking-backend/internal/user"
)

// Config holds the booking policy knobs, passed in at construction time.
type Config struct {
	// StrictSlotOrder preserves the historical behavior of validating the
	// slot sequence exactly as submitted: a contiguous set sent out of
	// chronological order is rejected. When false, slots are sorted by
	// starting hour before the contiguity check.
	StrictSlotOrder bool
}

type CreateRequest struct {
	UserID    string
	GroundID  string
	Date      time.Time
	TimeSlots []string
}

// ConflictCheck is the result of a read-only availability lookup.
type ConflictCheck struct {
	Conflict         bool
	ConflictingSlots []string
}

type Service interface {
	// BookedSlots returns the flat set of slot labels confirmed for the
	// ground on the given day.
	BookedSlots(ctx context.Context, groundID string, date time.Time) ([]string, error)

	// CheckConflict reports which of the requested slots collide with
	// existing confirmed bookings. Read-only; a store failure is returned
	// as-is so callers surface it as a retryable server error.
	CheckConflict(ctx context.Context, groundID string, date time.Time, slots []string) (ConflictCheck, error)

	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
}

type service struct {
	repo          Repository
	groundService ground.Service
	userService   user.Service
	publisher     notify.Publisher
	cache         *SlotCache
	cfg           Config
}

func NewService(
	repo Repository,
	groundService ground.Service,
	userService user.Service,
	publisher notify.Publisher,
	cache *SlotCache,
	cfg Config,
) Service {
	return &service{
		repo:          repo,
		groundService: groundService,
		userService:   userService,
		publisher:     publisher,
		cache:         cache,
		cfg:           cfg,
	}
}

func (s *service) BookedSlots(ctx context.Context, groundID string, date time.Time) ([]string, error) {
	day := NormalizeDate(date)

	if slots, ok := s.cache.Get(ctx, groundID, day); ok {
		return slots, nil
	}

	slots, err := s.repo.BookedSlots(ctx, groundID, day)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, groundID, day, slots)
	return slots, nil
}

func (s *service) CheckConflict(ctx context.Context, groundID string, date time.Time, slots []string) (ConflictCheck, error) {
	conflicts, err := s.repo.FindConflicting(ctx, groundID, NormalizeDate(date), slots)
	if err != nil {
		return ConflictCheck{}, err
	}
	return ConflictCheck{
		Conflict:         len(conflicts) > 0,
		ConflictingSlots: conflicts,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Structural validation.
	if len(req.TimeSlots) == 0 {
		return nil, ErrEmptySlots
	}

	slots := req.TimeSlots
	if !s.cfg.StrictSlotOrder {
		slots = NormalizeSlots(slots)
	}
	if !ValidateConsecutive(slots) {
		return nil, ErrNonConsecutiveSlots
	}

	// 2. The ground must exist and be active; its live price drives the total.
	g, err := s.groundService.GetPublic(ctx, req.GroundID)
	if err != nil {
		if errors.Is(err, ground.ErrNotFound) {
			return nil, ErrGroundNotFound
		}
		return nil, err
	}

	day := NormalizeDate(req.Date)

	// 3. Early conflict check. This gives a fast answer without taking the
	// per-(ground, date) lock; the authoritative check is repeated inside
	// the create transaction.
	conflicts, err := s.repo.FindConflicting(ctx, req.GroundID, day, slots)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Slots: conflicts}
	}

	b := &Booking{
		GroundID:    req.GroundID,
		UserID:      req.UserID,
		Date:        day,
		TimeSlots:   slots,
		Status:      StatusConfirmed,
		TotalAmount: g.Price * float64(len(slots)) * SlotHours,
	}

	// 4. Serialized check-and-insert. Under concurrency the transaction may
	// observe conflicts the early check above did not.
	conflicts, err = s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Slots: conflicts}
	}

	s.cache.Invalidate(ctx, b.GroundID, b.Date)

	b.GroundName = g.Name
	b.GroundCity = g.Location.City

	if u, err := s.userService.GetByID(ctx, req.UserID); err == nil {
		b.UserName = u.Name
		b.UserEmail = u.Email
	}

	s.publishConfirmed(ctx, b)

	return b, nil
}

// publishConfirmed emits the booking event. Best effort: a broker outage
// must not fail a booking that is already committed.
func (s *service) publishConfirmed(ctx context.Context, b *Booking) {
	ev := notify.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		UserEmail:   b.UserEmail,
		GroundID:    b.GroundID,
		GroundName:  b.GroundName,
		Date:        b.Date.Format("2006-01-02"),
		TimeSlots:   b.TimeSlots,
		TotalAmount: b.TotalAmount,
		ConfirmedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("failed to publish booking.confirmed for %s: %v", b.ID, err)
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Status changes alter availability for the booking's day.
	s.cache.Invalidate(ctx, b.GroundID, b.Date)

	return b, nil
}

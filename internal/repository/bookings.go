package repository

import (
	"context"
	"sync"

	"github.com/Shivanand-hulikatti/room-booking/internal/model"
	"github.com/google/uuid"
)

// roomDateKey indexes bookings by the pair that the overlap invariant is
// scoped to: conflicts can only exist between bookings that share both.
type roomDateKey struct {
	RoomID int64
	Date   string
}

// BookingRepository is the reservation engine's store. It upholds one
// invariant: no two stored bookings for the same room and date have
// intersecting half-open intervals.
type BookingRepository struct {
	mu         sync.RWMutex
	byRoomDate map[roomDateKey][]*model.Booking
	all        []*model.Booking
	nextID     int64
	clock      Clock
}

// NewBookingRepository constructs an empty booking store.
func NewBookingRepository(clock Clock) *BookingRepository {
	return &BookingRepository{
		byRoomDate: make(map[roomDateKey][]*model.Booking),
		clock:      clock,
	}
}

// overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
// Touching endpoints do not overlap: a booking ending at 11:00 coexists with
// one starting at 11:00. Bounds are compared as opaque strings.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// Book performs a concurrency-safe admission: scan for a conflicting booking,
// and commit only if none exists.
//
// The scan and the insert must be a single critical section. With a naive
// read-then-write, two goroutines booking the same slot could both scan before
// either commits, both find the slot free, and both insert, breaking the
// no-overlap invariant. Holding the write lock across both steps serialises
// admissions per store, so the second request observes the first one's commit
// and is rejected.
func (r *BookingRepository) Book(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := roomDateKey{RoomID: req.RoomID, Date: req.Date}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byRoomDate[key] {
		if overlaps(req.StartTime, req.EndTime, existing.StartTime, existing.EndTime) {
			return nil, ErrBookingConflict
		}
	}

	r.nextID++
	booking := &model.Booking{
		ID:            r.nextID,
		ReferenceCode: uuid.New().String(),
		RoomID:        req.RoomID,
		CustomerName:  req.CustomerName,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.StatusConfirmed,
		CreatedAt:     r.clock.Now(),
	}
	r.byRoomDate[key] = append(r.byRoomDate[key], booking)
	r.all = append(r.all, booking)

	out := *booking
	return &out, nil
}

// List returns every booking in creation order.
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]model.Booking, 0, len(r.all))
	for _, b := range r.all {
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

// ListByRoom returns all bookings for a room, across all dates, in creation
// order.
func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []model.Booking
	for _, b := range r.all {
		if b.RoomID == roomID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

// ListByCustomer returns all bookings whose customer name matches exactly
// (case-sensitive), in creation order. An unknown customer yields an empty
// result, not an error.
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerName string) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []model.Booking
	for _, b := range r.all {
		if b.CustomerName == customerName {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

// Package repository implements the in-memory stores behind the booking API.
// All state is owned by the repository types; nothing outside this package
// holds a reference to the underlying collections.
package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/room-booking/internal/model"
)

// ErrRoomNotFound is returned when a requested room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingConflict is returned when a candidate interval overlaps an
// existing booking on the same room and date.
var ErrBookingConflict = errors.New("room already booked for the given time slot")

// Clock abstracts time.Now so tests can pin createdAt timestamps.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// RoomRepository is the room registry. Rooms are created once and never
// mutated or deleted, so reads hand out shallow copies and are safe to use
// after the lock is released.
type RoomRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*model.Room
	order  []*model.Room
	nextID int64
	clock  Clock
}

// NewRoomRepository constructs an empty registry.
func NewRoomRepository(clock Clock) *RoomRepository {
	return &RoomRepository{
		byID:  make(map[int64]*model.Room),
		clock: clock,
	}
}

// Create stores a new room and returns it with the next identifier.
// Identifiers are strictly increasing and never reused, even if deletion is
// added later.
func (r *RoomRepository) Create(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	room := &model.Room{
		ID:           r.nextID,
		Name:         req.Name,
		SeatCount:    req.SeatCount,
		Amenities:    append([]string(nil), req.Amenities...),
		PricePerHour: req.PricePerHour,
		CreatedAt:    r.clock.Now(),
	}
	r.byID[room.ID] = room
	r.order = append(r.order, room)

	out := *room
	return &out, nil
}

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.byID[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	out := *room
	return &out, nil
}

// List returns all rooms in creation order.
func (r *RoomRepository) List(ctx context.Context) ([]model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]model.Room, 0, len(r.order))
	for _, room := range r.order {
		rooms = append(rooms, *room)
	}
	return rooms, nil
}

// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/room-booking/internal/model"
	"github.com/Shivanand-hulikatti/room-booking/internal/repository"
	"go.uber.org/zap"
)

// BookingService orchestrates room and booking operations.
type BookingService struct {
	rooms    *repository.RoomRepository
	bookings *repository.BookingRepository
	log      *zap.Logger
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(
	rooms *repository.RoomRepository,
	bookings *repository.BookingRepository,
	log *zap.Logger,
) *BookingService {
	return &BookingService{rooms: rooms, bookings: bookings, log: log}
}

// CreateRoom validates the request and delegates to the registry.
func (s *BookingService) CreateRoom(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("roomName is required")
	}
	if req.SeatCount < 0 {
		return nil, fmt.Errorf("numberOfSeats cannot be negative")
	}
	if req.PricePerHour < 0 {
		return nil, fmt.Errorf("pricePerHour cannot be negative")
	}

	room, err := s.rooms.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	s.log.Info("room created", zap.Int64("room_id", room.ID), zap.String("name", room.Name))
	return room, nil
}

// GetRoom returns a single room by id.
func (s *BookingService) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// CreateBooking validates the request, resolves the room, and delegates the
// concurrency-safe admission to the repository layer.
func (s *BookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return nil, fmt.Errorf("customerName is required")
	}
	if req.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if req.StartTime == "" || req.EndTime == "" {
		return nil, fmt.Errorf("startTime and endTime are required")
	}
	if req.StartTime >= req.EndTime {
		return nil, fmt.Errorf("startTime must be before endTime")
	}

	// Rooms are never deleted, so resolving outside the booking critical
	// section cannot race with the admission scan.
	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("resolve room: %w", err)
	}

	booking, err := s.bookings.Book(ctx, req)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, repository.ErrBookingConflict) {
			s.log.Info("booking rejected",
				zap.Int64("room_id", req.RoomID),
				zap.String("date", req.Date),
				zap.String("start", req.StartTime),
				zap.String("end", req.EndTime),
			)
			return nil, err
		}
		return nil, fmt.Errorf("book room: %w", err)
	}

	s.log.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("room_id", booking.RoomID),
		zap.String("customer", booking.CustomerName),
	)
	return booking, nil
}

// ListRoomsWithBookings returns every room joined with all of its bookings.
// BookedStatus reflects whether the room has ever had a booking, not whether
// it is occupied right now; that matches the upstream behavior this API
// replaces.
func (s *BookingService) ListRoomsWithBookings(ctx context.Context) ([]model.RoomWithBookings, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	out := make([]model.RoomWithBookings, 0, len(rooms))
	for _, room := range rooms {
		bookings, err := s.bookings.ListByRoom(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("list bookings for room %d: %w", room.ID, err)
		}
		status := "Available"
		if len(bookings) > 0 {
			status = "Booked"
		}
		if bookings == nil {
			bookings = []model.Booking{}
		}
		out = append(out, model.RoomWithBookings{
			RoomName:     room.Name,
			BookedStatus: status,
			Bookings:     bookings,
		})
	}
	return out, nil
}

// ListCustomerBookings returns one row per booking, joined with its room's
// name. A booking referencing an unresolvable room means the store has been
// corrupted; that is reported, never papered over.
func (s *BookingService) ListCustomerBookings(ctx context.Context) ([]model.CustomerBookingRow, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	rows := make([]model.CustomerBookingRow, 0, len(bookings))
	for _, b := range bookings {
		room, err := s.rooms.GetByID(ctx, b.RoomID)
		if err != nil {
			return nil, fmt.Errorf("booking %d references unknown room %d: %w", b.ID, b.RoomID, err)
		}
		rows = append(rows, model.CustomerBookingRow{
			CustomerName: b.CustomerName,
			RoomName:     room.Name,
			Date:         b.Date,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}
	return rows, nil
}

// GetCustomerHistory returns all bookings made under the given customer name.
// Matching is exact and case-sensitive; normalization is left to callers.
func (s *BookingService) GetCustomerHistory(ctx context.Context, customerName string) ([]model.Booking, error) {
	if customerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	return s.bookings.ListByCustomer(ctx, customerName)
}

// Package model defines the core domain types for the room booking system.
package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking. Only Confirmed
// is reachable today; the type exists so that adding Cancelled or NoShow later
// is an additive change instead of a breaking one.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
)

// Room represents a bookable meeting room.
type Room struct {
	ID           int64     `json:"id"`
	Name         string    `json:"roomName"`
	SeatCount    int       `json:"numberOfSeats"`
	Amenities    []string  `json:"amenities"`
	PricePerHour float64   `json:"pricePerHour"`
	CreatedAt    time.Time `json:"created_at"`
}

// Booking represents a confirmed reservation of one room for one customer
// over a time interval on a given date.
//
// Date, StartTime and EndTime are opaque comparable strings ("2024-01-01",
// "10:00"). The engine compares them lexicographically and never parses them;
// callers are expected to use a consistent zero-padded representation.
type Booking struct {
	ID            int64         `json:"id"`
	ReferenceCode string        `json:"referenceCode"`
	RoomID        int64         `json:"roomId"`
	CustomerName  string        `json:"customerName"`
	Date          string        `json:"date"`
	StartTime     string        `json:"startTime"`
	EndTime       string        `json:"endTime"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CreateRoomRequest is the payload for creating a new room.
type CreateRoomRequest struct {
	Name         string   `json:"roomName"`
	SeatCount    int      `json:"numberOfSeats"`
	Amenities    []string `json:"amenities"`
	PricePerHour float64  `json:"pricePerHour"`
}

// CreateBookingRequest is the payload for booking a room.
type CreateBookingRequest struct {
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	RoomID       int64  `json:"roomId"`
}

// RoomWithBookings is one row of the GET /rooms listing: a room's name, a
// coarse booked/available flag, and every booking ever made against it.
type RoomWithBookings struct {
	RoomName     string    `json:"roomName"`
	BookedStatus string    `json:"bookedStatus"`
	Bookings     []Booking `json:"bookings"`
}

// CustomerBookingRow is one row of the GET /customers listing: a booking
// joined with its room's display name.
type CustomerBookingRow struct {
	CustomerName string `json:"customerName"`
	RoomName     string `json:"roomName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/room-booking/internal/model"
	"github.com/Shivanand-hulikatti/room-booking/internal/repository"
	"github.com/Shivanand-hulikatti/room-booking/internal/service"
	"github.com/go-chi/chi/v5"
)

// conflictMessage is the exact error body clients match on when a slot is
// already taken. Changing it breaks existing consumers.
const conflictMessage = "Room already booked for the given time slot."

// BookingHandler holds all HTTP handlers for the room booking API.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateRoom handles POST /rooms
// Registers a new room with the given name, seat count, amenities, and price.
func (h *BookingHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := h.svc.CreateRoom(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

// ListRooms handles GET /rooms
// Returns every room with its booked status and full booking list.
func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ListRoomsWithBookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if rooms == nil {
		rooms = []model.RoomWithBookings{}
	}

	writeJSON(w, http.StatusOK, rooms)
}

// GetRoom handles GET /rooms/{id}
// Returns a single room by its numeric id.
func (h *BookingHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "room id must be an integer")
		return
	}

	room, err := h.svc.GetRoom(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get room")
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// CreateBooking handles POST /bookings
// Performs a concurrency-safe admission for the requested slot.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "room not found")
		case errors.Is(err, repository.ErrBookingConflict):
			writeError(w, http.StatusBadRequest, conflictMessage)
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// ListCustomers handles GET /customers
// Returns one row per booking, joined with the room's display name.
func (h *BookingHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListCustomerBookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customer bookings")
		return
	}

	if rows == nil {
		rows = []model.CustomerBookingRow{}
	}

	writeJSON(w, http.StatusOK, rows)
}

// GetCustomerHistory handles GET /customers/{customerName}/bookings
// Returns the customer's bookings; an unknown customer gets an empty array,
// not a 404.
func (h *BookingHandler) GetCustomerHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "customerName")

	bookings, err := h.svc.GetCustomerHistory(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSON(w, http.StatusOK, bookings)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

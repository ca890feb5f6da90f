package repository_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/room-booking/internal/model"
	"github.com/Shivanand-hulikatti/room-booking/internal/repository"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

func newFakeClock() fakeClock {
	return fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func bookingReq(roomID int64, date, start, end string) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		CustomerName: "Alice",
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		RoomID:       roomID,
	}
}

func TestBook_AssignsMonotonicIDsAndMetadata(t *testing.T) {
	clock := newFakeClock()
	repo := repository.NewBookingRepository(clock)
	ctx := context.Background()

	b1, err := repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)
	b2, err := repo.Book(ctx, bookingReq(2, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	require.Equal(t, int64(1), b1.ID)
	require.Equal(t, int64(2), b2.ID)
	require.Equal(t, model.StatusConfirmed, b1.Status)
	require.Equal(t, clock.now, b1.CreatedAt)
	require.NotEmpty(t, b1.ReferenceCode)
	require.NotEqual(t, b1.ReferenceCode, b2.ReferenceCode)
}

func TestBook_TouchingEndpointsDoNotConflict(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	_, err := repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	// [10:00,11:00) and [11:00,12:00) share only the boundary point.
	_, err = repo.Book(ctx, bookingReq(1, "2024-01-01", "11:00", "12:00"))
	require.NoError(t, err)
}

func TestBook_OverlappingIntervalConflicts(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	_, err := repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = repo.Book(ctx, bookingReq(1, "2024-01-01", "10:30", "11:30"))
	require.ErrorIs(t, err, repository.ErrBookingConflict)

	// The rejection must leave the store untouched.
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestBook_ContainedAndContainingIntervalsConflict(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	_, err := repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "12:00"))
	require.NoError(t, err)

	_, err = repo.Book(ctx, bookingReq(1, "2024-01-01", "10:30", "11:00"))
	require.ErrorIs(t, err, repository.ErrBookingConflict)

	_, err = repo.Book(ctx, bookingReq(1, "2024-01-01", "09:00", "13:00"))
	require.ErrorIs(t, err, repository.ErrBookingConflict)
}

func TestBook_DifferentRoomOrDateDoesNotConflict(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	_, err := repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = repo.Book(ctx, bookingReq(2, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = repo.Book(ctx, bookingReq(1, "2024-01-02", "10:00", "11:00"))
	require.NoError(t, err)
}

func TestList_ReturnsCreationOrderAndIsIdempotent(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	for hour := 10; hour < 14; hour++ {
		_, err := repo.Book(ctx, bookingReq(1, "2024-01-01",
			fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:00", hour+1)))
		require.NoError(t, err)
	}

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	for i, b := range first {
		require.Equal(t, int64(i+1), b.ID)
	}
}

func TestListByCustomer_ExactMatchOnly(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	req := bookingReq(1, "2024-01-01", "10:00", "11:00")
	req.CustomerName = "Alice"
	_, err := repo.Book(ctx, req)
	require.NoError(t, err)

	got, err := repo.ListByCustomer(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.ListByCustomer(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = repo.ListByCustomer(ctx, "Bob")
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestBook_NeverAdmitsOverlappingPair throws randomized interval sets at the
// engine and verifies that whatever subset it admits is conflict free.
func TestBook_NeverAdmitsOverlappingPair(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	for trial := 0; trial < 50; trial++ {
		repo := repository.NewBookingRepository(newFakeClock())

		for i := 0; i < 30; i++ {
			start := rng.Intn(23)
			end := start + 1 + rng.Intn(23-start)
			_, err := repo.Book(ctx, bookingReq(1, "2024-01-01",
				fmt.Sprintf("%02d:00", start), fmt.Sprintf("%02d:00", end)))
			if err != nil {
				require.ErrorIs(t, err, repository.ErrBookingConflict)
			}
		}

		admitted, err := repo.List(ctx)
		require.NoError(t, err)
		for i := 0; i < len(admitted); i++ {
			for j := i + 1; j < len(admitted); j++ {
				a, b := admitted[i], admitted[j]
				overlap := !(a.EndTime <= b.StartTime || a.StartTime >= b.EndTime)
				require.False(t, overlap,
					"trial %d admitted overlapping pair [%s,%s) and [%s,%s)",
					trial, a.StartTime, a.EndTime, b.StartTime, b.EndTime)
			}
		}
	}
}

// TestBook_ConcurrentIdenticalSlot verifies the check-then-commit critical
// section: of N racing requests for the same slot, exactly one wins.
func TestBook_ConcurrentIdenticalSlot(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "11:00"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, repository.ErrBookingConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, conflicts)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestBook_CancelledContext(t *testing.T) {
	repo := repository.NewBookingRepository(newFakeClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Book(ctx, bookingReq(1, "2024-01-01", "10:00", "11:00"))
	require.ErrorIs(t, err, context.Canceled)
}

package usecase

import (
	"context"
	"sync"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. They keep the same all-or-nothing and
// conditional-update semantics as the SQL implementations so the
// concurrency tests exercise the real coordination logic.

type fakeShowRepo struct {
	mu    sync.Mutex
	shows map[uuid.UUID]*entity.Show
}

func newFakeShowRepo() *fakeShowRepo {
	return &fakeShowRepo{shows: make(map[uuid.UUID]*entity.Show)}
}

func (f *fakeShowRepo) Create(ctx context.Context, show *entity.Show) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows[show.ID] = show
	return nil
}

func (f *fakeShowRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	show, ok := f.shows[id]
	if !ok {
		return nil, nil
	}
	copied := *show
	return &copied, nil
}

func (f *fakeShowRepo) FindAll(ctx context.Context) ([]*entity.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var shows []*entity.Show
	for _, show := range f.shows {
		copied := *show
		shows = append(shows, &copied)
	}
	return shows, nil
}

func (f *fakeShowRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if show, ok := f.shows[id]; ok {
		show.Active = false
	}
	return nil
}

func (f *fakeShowRepo) setPrice(id uuid.UUID, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows[id].Price = price
}

type fakeSeatRepo struct {
	mu    sync.Mutex
	seats map[uuid.UUID]*entity.Seat
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{seats: make(map[uuid.UUID]*entity.Seat)}
}

func (f *fakeSeatRepo) Create(ctx context.Context, seat *entity.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seats[seat.ID] = seat
	return nil
}

func (f *fakeSeatRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []*entity.Seat
	for _, id := range ids {
		if seat, ok := f.seats[id]; ok {
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (f *fakeSeatRepo) FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []*entity.Seat
	for _, seat := range f.seats {
		if seat.ScreenID == screenID {
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

type claimKey struct {
	showID uuid.UUID
	seatID uuid.UUID
}

type fakeSeatLedger struct {
	mu     sync.Mutex
	claims map[claimKey]uuid.UUID
}

func newFakeSeatLedger() *fakeSeatLedger {
	return &fakeSeatLedger{claims: make(map[claimKey]uuid.UUID)}
}

func (f *fakeSeatLedger) TryClaim(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var conflicts []uuid.UUID
	for _, seatID := range seatIDs {
		if _, taken := f.claims[claimKey{showID, seatID}]; taken {
			conflicts = append(conflicts, seatID)
		}
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	for _, seatID := range seatIDs {
		f.claims[claimKey{showID, seatID}] = bookingID
	}
	return nil, nil
}

func (f *fakeSeatLedger) Release(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seatID := range seatIDs {
		delete(f.claims, claimKey{showID, seatID})
	}
	return nil
}

func (f *fakeSeatLedger) FindClaimedSeatIDs(ctx context.Context, showID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seatIDs []uuid.UUID
	for key := range f.claims {
		if key.showID == showID {
			seatIDs = append(seatIDs, key.seatID)
		}
	}
	return seatIDs, nil
}

func (f *fakeSeatLedger) releaseByBooking(bookingID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, owner := range f.claims {
		if owner == bookingID {
			delete(f.claims, key)
		}
	}
}

func (f *fakeSeatLedger) claimCount(showID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for key := range f.claims {
		if key.showID == showID {
			count++
		}
	}
	return count
}

type fakeBookingRepo struct {
	mu          sync.Mutex
	bookings    map[uuid.UUID]*entity.Booking
	bookedSeats map[uuid.UUID][]uuid.UUID
	ledger      *fakeSeatLedger
	failCreate  error
	failCancel  error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:    make(map[uuid.UUID]*entity.Booking),
		bookedSeats: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeBookingRepo) CreateWithSeats(ctx context.Context, booking *entity.Booking, seats []*entity.BookedSeat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	for _, bs := range seats {
		f.bookedSeats[booking.ID] = append(f.bookedSeats[booking.ID], bs.SeatID)
	}
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			copied := *booking
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range f.bookings {
		copied := *booking
		bookings = append(bookings, &copied)
	}
	return bookings, nil
}

func (f *fakeBookingRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CancelAndRelease(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCancel != nil {
		return false, f.failCancel
	}
	booking, ok := f.bookings[id]
	if !ok || booking.Cancelled {
		return false, nil
	}
	booking.Cancelled = true
	f.ledger.releaseByBooking(id)
	return true, nil
}

type fakeBookedSeatRepo struct {
	bookings *fakeBookingRepo
	seats    *fakeSeatRepo
}

func (f *fakeBookedSeatRepo) FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Seat, error) {
	f.bookings.mu.Lock()
	seatIDs := append([]uuid.UUID(nil), f.bookings.bookedSeats[bookingID]...)
	f.bookings.mu.Unlock()
	return f.seats.FindByIDs(ctx, seatIDs)
}

type fakeSeatCache struct {
	mu            sync.Mutex
	invalidations int
}

func (f *fakeSeatCache) Get(ctx context.Context, showID uuid.UUID, dest any) (bool, error) {
	return false, nil
}

func (f *fakeSeatCache) Set(ctx context.Context, showID uuid.UUID, value any) error {
	return nil
}

func (f *fakeSeatCache) InvalidateShow(ctx context.Context, showID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
	return nil
}

func (f *fakeSeatCache) invalidationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidations
}

func newFakeRepository(shows *fakeShowRepo, seats *fakeSeatRepo, ledger *fakeSeatLedger, bookings *fakeBookingRepo) *repository.Repository {
	bookings.ledger = ledger
	return &repository.Repository{
		Show:       shows,
		Seat:       seats,
		SeatLedger: ledger,
		Booking:    bookings,
		BookedSeat: &fakeBookedSeatRepo{bookings: bookings, seats: seats},
	}
}

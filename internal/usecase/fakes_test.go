package usecase

import (
	"context"
	"sync"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. Each method takes the lock so concurrent
// service calls behave like independent database transactions.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*entity.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*entity.Room)}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	return f.Create(ctx, room)
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok := f.rooms[id]; ok {
		copied := *room
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRoomRepo) FindByRoomNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, room := range f.rooms {
		if room.RoomNumber == roomNumber {
			copied := *room
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) FindCandidates(ctx context.Context, minCapacity int, roomType string, accessible *bool) ([]*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*entity.Room
	for _, room := range f.rooms {
		if !room.IsBookable() {
			continue
		}
		if room.Capacity < minCapacity {
			continue
		}
		if roomType != "" && room.RoomType != roomType {
			continue
		}
		if accessible != nil && room.Accessible != *accessible {
			continue
		}
		copied := *room
		results = append(results, &copied)
	}
	return results, nil
}

func (f *fakeRoomRepo) UpdateStatus(ctx context.Context, roomID uuid.UUID, status entity.RoomStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok := f.rooms[roomID]; ok {
		room.Status = status
	}
	return nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*entity.Reservation)}
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *reservation
	f.reservations[reservation.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	return f.Create(ctx, reservation)
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reservation, ok := f.reservations[id]; ok {
		copied := *reservation
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByConfirmationNumber(ctx context.Context, confirmation string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reservation := range f.reservations {
		if reservation.ConfirmationNumber == confirmation {
			copied := *reservation
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) ExistsByConfirmationNumber(ctx context.Context, confirmation string) (bool, error) {
	found, err := f.FindByConfirmationNumber(ctx, confirmation)
	return found != nil, err
}

func (f *fakeReservationRepo) FindByGuestID(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*entity.Reservation
	for _, reservation := range f.reservations {
		if reservation.GuestID == guestID {
			copied := *reservation
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (f *fakeReservationRepo) FindConflicts(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*entity.Reservation
	for _, reservation := range f.reservations {
		if reservation.RoomID != roomID {
			continue
		}
		if excludeID != nil && reservation.ID == *excludeID {
			continue
		}
		if !reservation.Status.IsBlocking() {
			continue
		}
		if reservation.Overlaps(checkIn, checkOut) {
			copied := *reservation
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (f *fakeReservationRepo) FindDueCheckIns(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*entity.Reservation
	for _, reservation := range f.reservations {
		if reservation.Status == entity.StatusConfirmed && reservation.CheckInDate.Equal(date) {
			copied := *reservation
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (f *fakeReservationRepo) FindDueCheckOuts(ctx context.Context, date time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*entity.Reservation
	for _, reservation := range f.reservations {
		if reservation.Status == entity.StatusCheckedIn && reservation.CheckOutDate.Equal(date) {
			copied := *reservation
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (f *fakeReservationRepo) FindOverdueCheckIns(ctx context.Context, before time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*entity.Reservation
	for _, reservation := range f.reservations {
		if reservation.Status == entity.StatusConfirmed && !reservation.CheckInDate.After(before) {
			copied := *reservation
			results = append(results, &copied)
		}
	}
	return results, nil
}

// testNow is the fixed moment every service test runs at.
var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func testHotelConfig() utils.HotelConfig {
	return utils.HotelConfig{
		Timezone:                "UTC",
		CheckInDeadlineHour:     18,
		CheckOutHour:            12,
		EarlyBirdDays:           30,
		EarlyBirdPercent:        15.0,
		FreeCancellationHours:   24,
		CancellationFeePercent:  10.0,
		StandardDeposit:         200000,
		LateCheckOutFee:         50000,
		MaxStayNights:           30,
		MaxGuests:               10,
		ConfirmationMaxAttempts: 10,
	}
}

type testEnv struct {
	repo         *repository.Repository
	users        *fakeUserRepo
	rooms        *fakeRoomRepo
	reservations *fakeReservationRepo
	pricing      *PricingEngine
	clock        utils.FixedClock
	hotel        utils.HotelConfig
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	rooms := newFakeRoomRepo()
	reservations := newFakeReservationRepo()
	hotel := testHotelConfig()
	clock := utils.FixedClock{Moment: testNow}
	return &testEnv{
		repo:         &repository.Repository{User: users, Room: rooms, Reservation: reservations},
		users:        users,
		rooms:        rooms,
		reservations: reservations,
		pricing:      NewPricingEngine(hotel, clock),
		clock:        clock,
		hotel:        hotel,
	}
}

func (e *testEnv) reservationService() ReservationService {
	availability := e.availabilityService()
	confirmation := NewConfirmationGenerator(e.reservations, e.clock, e.hotel.ConfirmationMaxAttempts)
	return NewReservationService(e.repo, availability, e.pricing, confirmation, nil, e.hotel, e.clock, zap.NewNop())
}

func (e *testEnv) availabilityService() AvailabilityService {
	return NewAvailabilityService(e.repo, e.pricing, e.clock, nil, 0, zap.NewNop())
}

func (e *testEnv) checkInService() CheckInService {
	return NewCheckInService(e.repo, nil, e.hotel, e.clock, zap.NewNop())
}

func (e *testEnv) checkOutService() CheckOutService {
	return NewCheckOutService(e.repo, e.pricing, nil, e.hotel, e.clock, zap.NewNop())
}

func (e *testEnv) noShowService(clock utils.Clock) NoShowService {
	return NewNoShowService(e.repo, nil, e.hotel, clock, zap.NewNop())
}

func (e *testEnv) addRoom(roomNumber string, capacity int, basePrice float64) *entity.Room {
	room := &entity.Room{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		RoomNumber: roomNumber,
		RoomType:   "DOUBLE",
		Capacity:   capacity,
		BedType:    "QUEEN",
		BasePrice:  basePrice,
		Amenities:  []string{"WIFI", "TV"},
		Floor:      1,
		Status:     entity.RoomStatusAvailable,
		Active:     true,
	}
	e.rooms.Create(context.Background(), room)
	return room
}

func (e *testEnv) addReservation(room *entity.Room, guestID uuid.UUID, checkIn, checkOut string, status entity.ReservationStatus) *entity.Reservation {
	in, _ := utils.ParseDate(checkIn)
	out, _ := utils.ParseDate(checkOut)
	reservation := &entity.Reservation{
		Base:               entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		ConfirmationNumber: "CONF" + uuid.New().String()[:12],
		GuestID:            guestID,
		RoomID:             room.ID,
		CheckInDate:        in,
		CheckOutDate:       out,
		Adults:             2,
		TotalAmount:        room.BasePrice * float64(int(out.Sub(in).Hours()/24)),
		Currency:           "COP",
		Status:             status,
	}
	e.reservations.Create(context.Background(), reservation)
	return reservation
}

func date(value string) time.Time {
	parsed, _ := utils.ParseDate(value)
	return parsed
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	SearchAvailableRooms(ctx context.Context, req *request.SearchAvailabilityRequest) ([]*response.AvailableRoomResponse, error)
	CheckRoomAvailability(ctx context.Context, roomID string, req *request.RoomAvailabilityRequest) (*response.RoomAvailabilityResponse, error)

	// FindConflicts is the single conflict predicate. Both search and
	// booking validation go through it.
	FindConflicts(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error)
}

type availabilityService struct {
	repo     *repository.Repository
	pricing  *PricingEngine
	clock    utils.Clock
	cache    *redis.Client
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, pricing *PricingEngine, clock utils.Clock, cache *redis.Client, cacheTTL time.Duration, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:     repo,
		pricing:  pricing,
		clock:    clock,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) SearchAvailableRooms(ctx context.Context, req *request.SearchAvailabilityRequest) ([]*response.AvailableRoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	checkIn, checkOut, err := s.parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if cached := s.cacheGet(ctx, req); cached != nil {
		return cached, nil
	}

	totalGuests := req.Adults + req.Children
	candidates, err := s.repo.Room.FindCandidates(ctx, totalGuests, req.RoomType, req.Accessible)
	if err != nil {
		return nil, fmt.Errorf("find candidate rooms: %w", err)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	var results []*response.AvailableRoomResponse

	for _, room := range candidates {
		if req.PriceBand != "" && entity.BandForPrice(room.BasePrice) != entity.PriceBand(req.PriceBand) {
			continue
		}
		if len(req.Amenities) > 0 && !room.HasAmenities(req.Amenities) {
			continue
		}

		conflicts, err := s.FindConflicts(ctx, room.ID, checkIn, checkOut, nil)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			continue
		}

		total := s.pricing.PriceStay(room, checkIn, checkOut, totalGuests)
		results = append(results, &response.AvailableRoomResponse{
			RoomID:     room.ID.String(),
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
			Capacity:   room.Capacity,
			BedType:    room.BedType,
			BasePrice:  room.BasePrice,
			TotalPrice: total,
			Nights:     nights,
			PriceBand:  string(entity.BandForPrice(room.BasePrice)),
			Amenities:  room.Amenities,
			Accessible: room.Accessible,
			Available:  true,
		})
	}

	// Cheapest first, ties broken by room number for determinism
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalPrice != results[j].TotalPrice {
			return results[i].TotalPrice < results[j].TotalPrice
		}
		return results[i].RoomNumber < results[j].RoomNumber
	})

	s.cacheSet(ctx, req, results)

	s.log.Info("Availability search completed",
		zap.String("check_in", req.CheckInDate),
		zap.String("check_out", req.CheckOutDate),
		zap.Int("guests", totalGuests),
		zap.Int("results", len(results)),
	)

	return results, nil
}

func (s *availabilityService) CheckRoomAvailability(ctx context.Context, roomID string, req *request.RoomAvailabilityRequest) (*response.RoomAvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, &InvalidInputError{Field: "room_id", Reason: "must be a valid UUID"}
	}

	checkIn, checkOut, err := s.parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, &NotFoundError{Resource: "room", Key: roomID}
	}

	conflicts, err := s.FindConflicts(ctx, room.ID, checkIn, checkOut, nil)
	if err != nil {
		return nil, err
	}

	resp := &response.RoomAvailabilityResponse{
		RoomID:       room.ID.String(),
		RoomNumber:   room.RoomNumber,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Available:    room.IsBookable() && len(conflicts) == 0,
	}
	if resp.Available {
		total := s.pricing.PriceStay(room, checkIn, checkOut, room.Capacity)
		resp.TotalPrice = &total
	}

	return resp, nil
}

func (s *availabilityService) FindConflicts(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error) {
	conflicts, err := s.repo.Reservation.FindConflicts(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find conflicts: %w", err)
	}
	return conflicts, nil
}

// parseStayDates validates the date pair against the clock.
func (s *availabilityService) parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_in_date", Reason: "must be a date in YYYY-MM-DD format"}
	}
	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_out_date", Reason: "must be a date in YYYY-MM-DD format"}
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_out_date", Reason: "must be after check-in date"}
	}

	today := utils.DateOnly(s.clock.Now().UTC())
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_in_date", Reason: "must not be in the past"}
	}

	return checkIn, checkOut, nil
}

// cacheGet returns nil on any miss or failure. Caching is best-effort.
func (s *availabilityService) cacheGet(ctx context.Context, req *request.SearchAvailabilityRequest) []*response.AvailableRoomResponse {
	if s.cache == nil {
		return nil
	}

	key := searchCacheKey(req)
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}

	var results []*response.AvailableRoomResponse
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil
	}

	s.log.Debug("Availability cache hit", zap.String("key", key))
	return results
}

func (s *availabilityService) cacheSet(ctx context.Context, req *request.SearchAvailabilityRequest, results []*response.AvailableRoomResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, searchCacheKey(req), raw, s.cacheTTL).Err(); err != nil {
		s.log.Debug("Availability cache write failed", zap.Error(err))
	}
}

func searchCacheKey(req *request.SearchAvailabilityRequest) string {
	raw, _ := json.Marshal(req)
	return "availability:search:" + string(raw)
}

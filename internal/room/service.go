package room

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	RoomNumber    string
	RoomType      string
	Capacity      int
	PricePerNight decimal.Decimal
	Description   string
}

type UpdateRequest struct {
	RoomNumber    *string
	RoomType      *string
	Capacity      *int
	PricePerNight *decimal.Decimal
	Description   *string
}

// View is a room together with its derived status for today.
type View struct {
	Room
	Status Status
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	// GetView returns a room with its derived status for today.
	GetView(ctx context.Context, id string) (*View, error)
	// List returns all rooms with their derived status, optionally filtered
	// to one status.
	List(ctx context.Context, status Status) ([]*View, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error
	MarkCleaning(ctx context.Context, id string) error
	MarkAvailable(ctx context.Context, id string) error
	// StatusCounts returns how many rooms are in each derived status today.
	StatusCounts(ctx context.Context) (map[Status]int, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if !IsValidType(req.RoomType) {
		return nil, ErrInvalidType
	}

	room := &Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Description:   req.Description,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetView(ctx context.Context, id string) (*View, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.repo.Occupancy(ctx, s.today())
	if err != nil {
		return nil, err
	}
	return &View{Room: *r, Status: derivedStatus(r, occupancy)}, nil
}

// derivedStatus resolves a single room's status from its occupancy and the
// housekeeping flag. Occupancy wins: a room both occupied and flagged for
// cleaning is still occupied.
func derivedStatus(r *Room, occupancy map[string]Status) Status {
	if st, ok := occupancy[r.ID]; ok {
		return st
	}
	if r.Cleaning {
		return StatusCleaning
	}
	return StatusAvailable
}

func (s *service) List(ctx context.Context, status Status) ([]*View, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	occupancy, err := s.repo.Occupancy(ctx, s.today())
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(rooms))
	for _, r := range rooms {
		st := derivedStatus(r, occupancy)
		if status != "" && st != status {
			continue
		}
		views = append(views, &View{Room: *r, Status: st})
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	if req.RoomNumber == nil && req.RoomType == nil && req.Capacity == nil &&
		req.PricePerNight == nil && req.Description == nil {
		return nil, ErrNoData
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.RoomType != nil {
		if !IsValidType(*req.RoomType) {
			return nil, ErrInvalidType
		}
		room.RoomType = *req.RoomType
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.PricePerNight != nil {
		room.PricePerNight = *req.PricePerNight
	}
	if req.Description != nil {
		room.Description = *req.Description
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) MarkCleaning(ctx context.Context, id string) error {
	return s.repo.SetCleaning(ctx, id, true)
}

func (s *service) MarkAvailable(ctx context.Context, id string) error {
	// Clearing housekeeping on an occupied room makes no sense; the room
	// stays occupied either way, so reject to surface the mistake.
	occupancy, err := s.repo.Occupancy(ctx, s.today())
	if err != nil {
		return err
	}
	if occupancy[id] == StatusOccupied {
		return ErrOccupied
	}
	return s.repo.SetCleaning(ctx, id, false)
}

func (s *service) StatusCounts(ctx context.Context) (map[Status]int, error) {
	views, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int)
	for _, v := range views {
		counts[v.Status]++
	}
	return counts, nil
}

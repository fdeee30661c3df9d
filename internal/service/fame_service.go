package service

import (
	"context"

	"fameboard/internal/cache"
	"fameboard/internal/models"
	"fameboard/internal/repository"
)

type FameService struct {
	fameRepo repository.FameRepository
	userRepo repository.UserRepository
	areaRepo repository.AreaRepository
}

func NewFameService(
	fameRepo repository.FameRepository,
	userRepo repository.UserRepository,
	areaRepo repository.AreaRepository,
) *FameService {
	return &FameService{
		fameRepo: fameRepo,
		userRepo: userRepo,
		areaRepo: areaRepo,
	}
}

// FameProfile is a user together with their per-topic standings.
type FameProfile struct {
	User  *models.User  `json:"user"`
	Fames []models.Fame `json:"fames"`
}

// Fame returns the user's reputation across every topic they have a record
// in, best standing first.
func (s *FameService) Fame(ctx context.Context, userID uint) (*FameProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	fames, err := s.fameRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FameProfile{User: user, Fames: fames}, nil
}

// Offender is one entry on a topic's offender board.
type Offender struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Rank     int    `json:"rank"`
}

// Bullshitters returns, per topic name, every user holding a negative
// standing there, worst rank first and newest account first within a rank.
func (s *FameService) Bullshitters(ctx context.Context) (map[string][]Offender, error) {
	var boards map[string][]Offender

	err := cache.Aside(ctx, cache.BullshittersKey, &boards, cache.BullshittersTTL, func() error {
		records, err := s.fameRepo.NegativeRecords(ctx)
		if err != nil {
			return err
		}

		boards = make(map[string][]Offender)
		for _, rec := range records {
			if rec.User == nil || rec.ExpertiseArea == nil {
				continue
			}
			boards[rec.ExpertiseArea.Name] = append(boards[rec.ExpertiseArea.Name], Offender{
				UserID:   rec.UserID,
				Username: rec.User.Username,
				Rank:     rec.Rank,
			})
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return boards, nil
}

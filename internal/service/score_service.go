package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidHealthScore = errors.New("health score must be between 0 and 100")

// ScoreService persists AI health assessments and serves back the most
// recent one.
type ScoreService interface {
	SaveHealthScore(ctx context.Context, score *domain.HealthScore) (*domain.HealthScore, error)
	GetLatestHealthScore(ctx context.Context, userID primitive.ObjectID) (*domain.HealthScore, error)
}

// scoreService implements the ScoreService interface.
type scoreService struct {
	scoreRepo repository.HealthScoreRepository
}

// NewScoreService creates a new instance of scoreService.
func NewScoreService(scoreRepo repository.HealthScoreRepository) ScoreService {
	return &scoreService{scoreRepo: scoreRepo}
}

// SaveHealthScore validates and persists one assessment.
func (s *scoreService) SaveHealthScore(ctx context.Context, score *domain.HealthScore) (*domain.HealthScore, error) {
	if score.HealthScore < 0 || score.HealthScore > 100 {
		return nil, ErrInvalidHealthScore
	}
	if score.Recommendations == nil {
		score.Recommendations = []string{}
	}
	if score.UploadedFiles == nil {
		score.UploadedFiles = []string{}
	}
	if score.GenerationTimestamp.IsZero() {
		score.GenerationTimestamp = time.Now().UTC()
	}

	id, err := s.scoreRepo.Create(ctx, score)
	if err != nil {
		return nil, fmt.Errorf("failed to save health score: %w", err)
	}
	score.ID = id
	return score, nil
}

// GetLatestHealthScore returns the most recently created assessment for
// the user, or repository.ErrNotFound when none exists.
func (s *scoreService) GetLatestHealthScore(ctx context.Context, userID primitive.ObjectID) (*domain.HealthScore, error) {
	return s.scoreRepo.GetLatestByUserID(ctx, userID)
}

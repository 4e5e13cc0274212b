package service

import (
	"context"

	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"
)

type ResultService struct {
	Repo *repository.ResultRepository
}

func NewResultService(repo *repository.ResultRepository) *ResultService {
	return &ResultService{Repo: repo}
}

func (s *ResultService) GetResultsByUser(ctx context.Context, userID string) ([]models.TestResult, error) {
	return s.Repo.FindByUser(ctx, userID)
}

func (s *ResultService) GetResultsBySubject(ctx context.Context, userID, subjectID string) ([]models.TestResult, error) {
	return s.Repo.FindByUserAndSubject(ctx, userID, subjectID)
}

package usecase

import (
	"context"
	"time"

	"github.com/tablier/resto-backoffice/internal/register"
	"github.com/tablier/resto-backoffice/internal/register/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type registerUseCase struct {
	repo   register.Repository
	logger logger.Logger
}

func NewRegisterUseCase(repo register.Repository, log logger.Logger) register.UseCase {
	return &registerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *registerUseCase) DailySummary(ctx context.Context, date time.Time) (*dto.DailySummary, error) {
	// Inclusive window over the server-local day.
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.Add(24*time.Hour - time.Millisecond)

	count, expected, err := uc.repo.ServedOrderStats(ctx, from, to)
	if err != nil {
		return nil, err
	}

	payments, err := uc.repo.CompletedPayments(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var received, change float64
	for _, p := range payments {
		received += p.Amount
		if over := p.Amount - p.OrderTotal; over > 0 {
			change += over
		}
	}

	return &dto.DailySummary{
		Date:              from.Format("2006-01-02"),
		ServedOrdersCount: count,
		ExpectedAmount:    expected,
		ReceivedCash:      received,
		ChangeGiven:       change,
		Variance:          received - change - expected,
	}, nil
}

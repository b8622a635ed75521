package register

import (
	"context"
	"time"

	"github.com/tablier/resto-backoffice/internal/register/dto"
)

type UseCase interface {
	// DailySummary reconciles one calendar day of the cash register. It is
	// read-only and safe to call repeatedly and concurrently.
	//
	// "Expected" is measured on the order clock (served orders created that
	// day); "received" on the payment clock (payments completed that day).
	// The two clocks differ on purpose: an order served late may be settled
	// the next morning, and the summary reports money where it moved.
	DailySummary(ctx context.Context, date time.Time) (*dto.DailySummary, error)
}

package dto

import "github.com/tablier/resto-backoffice/internal/model"

type OrderFilters struct {
	Status   string
	Type     string
	Page     int
	PageSize int
}

// TransitionResult is "succeeded, possibly with warnings": the status change
// is durable even when stock bookkeeping partially failed.
type TransitionResult struct {
	Order    *model.Order
	Warnings []string
}

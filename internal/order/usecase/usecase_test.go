package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order"
	"github.com/tablier/resto-backoffice/internal/order/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: map[string]*model.Order{}}
	for _, ord := range orders {
		repo.orders[ord.ID] = ord
	}
	return repo
}

func (f *fakeOrderRepo) Create(ctx context.Context, ord *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *ord
	f.orders[ord.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ord, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *ord
	return &copied, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, ord := range f.orders {
		if filters.Status != "" && string(ord.Status) != filters.Status {
			continue
		}
		out = append(out, *ord)
	}
	return out, len(out), nil
}

// UpdateStatus serializes on the repo mutex, mirroring the row lock of the
// real implementation.
func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, decide func(current model.OrderStatus) (model.OrderStatus, error)) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ord, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	target, err := decide(ord.Status)
	if err != nil {
		return nil, err
	}
	ord.Status = target
	copied := *ord
	return &copied, nil
}

type fakeDecrementer struct {
	mu       sync.Mutex
	calls    []string
	warnings []string
}

func (f *fakeDecrementer) DecrementForOrder(ctx context.Context, ord *model.Order) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ord.ID)
	return f.warnings
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (n *fakeNotifier) OrderStatusChanged(ctx context.Context, orderID, newStatus string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, orderID+":"+newStatus)
	return n.err
}

func (n *fakeNotifier) StockChanged(ctx context.Context, ingredientID string, newQuantity float64) error {
	return n.err
}

func pendingOrder(id string) *model.Order {
	return &model.Order{
		BaseModel: model.BaseModel{ID: id},
		Status:    model.OrderStatusPending,
		Type:      model.OrderTypeDineIn,
		Total:     12000,
	}
}

func TestTransitionSameStatusIsNoop(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	dec := &fakeDecrementer{}
	notifier := &fakeNotifier{}
	uc := NewOrderUseCase(repo, dec, notifier, logger.NewNop())

	result, err := uc.Transition(context.Background(), "ord-1", model.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, result.Order.Status)
	assert.Empty(t, dec.calls, "no-op transition must not touch stock")
	assert.Empty(t, notifier.events, "no-op transition must not emit an event")
}

func TestTransitionFirstPreparingDecrementsOnce(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	dec := &fakeDecrementer{}
	uc := NewOrderUseCase(repo, dec, &fakeNotifier{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Transition(ctx, "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, []string{"ord-1"}, dec.calls)

	// Repeating the same target and moving on through the lifecycle must not
	// trigger a second decrement.
	_, err = uc.Transition(ctx, "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err)
	_, err = uc.Transition(ctx, "ord-1", model.OrderStatusReady)
	require.NoError(t, err)
	_, err = uc.Transition(ctx, "ord-1", model.OrderStatusServed)
	require.NoError(t, err)
	assert.Len(t, dec.calls, 1)
}

func TestTransitionBackToPreparingDoesNotDecrementAgain(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	dec := &fakeDecrementer{}
	uc := NewOrderUseCase(repo, dec, &fakeNotifier{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Transition(ctx, "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err)
	_, err = uc.Transition(ctx, "ord-1", model.OrderStatusReady)
	require.NoError(t, err)
	_, err = uc.Transition(ctx, "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err)

	assert.Len(t, dec.calls, 1, "an order already past preparing must not decrement twice")
}

func TestTransitionTerminalRejected(t *testing.T) {
	served := pendingOrder("ord-served")
	served.Status = model.OrderStatusServed
	cancelled := pendingOrder("ord-cancelled")
	cancelled.Status = model.OrderStatusCancelled
	repo := newFakeOrderRepo(served, cancelled)
	uc := NewOrderUseCase(repo, &fakeDecrementer{}, &fakeNotifier{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Transition(ctx, "ord-served", model.OrderStatusCancelled)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	_, err = uc.Transition(ctx, "ord-cancelled", model.OrderStatusPending)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestTransitionUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	uc := NewOrderUseCase(repo, &fakeDecrementer{}, &fakeNotifier{}, logger.NewNop())

	_, err := uc.Transition(context.Background(), "ord-1", model.OrderStatus("delivering"))
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestTransitionOrderNotFound(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo(), &fakeDecrementer{}, &fakeNotifier{}, logger.NewNop())

	_, err := uc.Transition(context.Background(), "missing", model.OrderStatusPreparing)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestTransitionSurfacesDecrementWarnings(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	dec := &fakeDecrementer{warnings: []string{"decrement failed for ingredient ing-9: ingredient not found"}}
	uc := NewOrderUseCase(repo, dec, &fakeNotifier{}, logger.NewNop())

	result, err := uc.Transition(context.Background(), "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err, "stock trouble must not fail the transition")
	assert.Equal(t, model.OrderStatusPreparing, result.Order.Status)
	assert.Equal(t, dec.warnings, result.Warnings)

	stored, _ := repo.GetByID(context.Background(), "ord-1")
	assert.Equal(t, model.OrderStatusPreparing, stored.Status, "status change stays committed")
}

func TestTransitionNotifierFailureIgnored(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	notifier := &fakeNotifier{err: errors.New("broker down")}
	uc := NewOrderUseCase(repo, &fakeDecrementer{}, notifier, logger.NewNop())

	result, err := uc.Transition(context.Background(), "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, result.Order.Status)
}

func TestTransitionEmitsStatusEvent(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	notifier := &fakeNotifier{}
	uc := NewOrderUseCase(repo, &fakeDecrementer{}, notifier, logger.NewNop())

	_, err := uc.Transition(context.Background(), "ord-1", model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, []string{"ord-1:preparing"}, notifier.events)
}

func TestConcurrentPreparingTransitionsDecrementOnce(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ord-1"))
	dec := &fakeDecrementer{}
	uc := NewOrderUseCase(repo, dec, &fakeNotifier{}, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Transition(context.Background(), "ord-1", model.OrderStatusPreparing)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, dec.calls, 1, "racing transitions must fire the decrement exactly once")
}

func TestCreateComputesTotal(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := NewOrderUseCase(repo, &fakeDecrementer{}, &fakeNotifier{}, logger.NewNop())

	menuItem := "menu-1"
	ord, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		Type: "dine_in",
		Items: []dto.CreateOrderItemInput{
			{MenuItemID: &menuItem, Name: "Ndole special", Quantity: 2, UnitPrice: 1500},
			{Name: "Grilled fish", Quantity: 1, UnitPrice: 9000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 12000.0, ord.Total)
	assert.Equal(t, model.OrderStatusPending, ord.Status)
	require.Len(t, ord.Items, 2)
	assert.Equal(t, ord.ID, ord.Items[0].OrderID)
}

func TestCreateIncludesDeliveryFee(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo(), &fakeDecrementer{}, &fakeNotifier{}, logger.NewNop())

	ord, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		Type:        "delivery",
		DeliveryFee: 1000,
		Items: []dto.CreateOrderItemInput{
			{Name: "Poulet DG", Quantity: 1, UnitPrice: 5000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6000.0, ord.Total)
	assert.Equal(t, 1000.0, ord.DeliveryFee)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo(), &fakeDecrementer{}, &fakeNotifier{}, logger.NewNop())
	ctx := context.Background()

	cases := []*dto.CreateOrderInput{
		{Type: "drive_through", Items: []dto.CreateOrderItemInput{{Name: "x", Quantity: 1}}},
		{Type: "dine_in"},
		{Type: "dine_in", Items: []dto.CreateOrderItemInput{{Name: "x", Quantity: 0, UnitPrice: 100}}},
		{Type: "dine_in", Items: []dto.CreateOrderItemInput{{Name: "x", Quantity: 1, UnitPrice: -5}}},
	}
	for _, input := range cases {
		_, err := uc.Create(ctx, input)
		assert.ErrorIs(t, err, order.ErrInvalidOrder)
	}
}

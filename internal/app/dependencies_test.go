package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
)

func TestNewDependencies(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), quietLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })

	assert.Len(t, deps.Catalog.List(), 5)
	assert.Zero(t, deps.History.Count())
	assert.NotNil(t, deps.Registry)
	assert.NotNil(t, deps.Metrics)
	assert.NotNil(t, deps.Health)
	assert.Nil(t, deps.Publisher)
	assert.Nil(t, deps.ReceiptPublisher(), "no typed nil behind the interface")
}

func TestNewDependencies_DuplicateProducts(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog = append(cfg.Catalog, ProductConfig{ID: 1, Name: "Kopiko Again", Price: "1"})

	_, err := NewDependencies(context.Background(), cfg, quietLogger(t))
	require.Error(t, err)
}

func TestNewDependencies_NilLogger(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, deps.Logger)
	require.NoError(t, deps.Close(context.Background()))
}

func TestDependencies_CloseIsIdempotent(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), quietLogger(t))
	require.NoError(t, err)

	require.NoError(t, deps.Close(context.Background()))
	require.NoError(t, deps.Close(context.Background()))
}

func TestNewDependencies_MetricsRegistered(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), quietLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })

	deps.Metrics.RecordItemAdded()

	families, err := deps.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["storefront_cart_items_added_total"])
	assert.True(t, names["go_goroutines"])
}

type recordingPublisher struct {
	mu       sync.Mutex
	received []int64
}

func (p *recordingPublisher) PublishReceipt(_ context.Context, receipt domain.Receipt) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, receipt.OrderID)
	return nil
}

func TestDependencies_ReceiptPublisherUsesOutbox(t *testing.T) {
	target := &recordingPublisher{}
	worker := outbox.NewWorker(target, outbox.WithLogger(quietLogger(t)))
	worker.Start()
	deps := &Dependencies{Outbox: worker, Logger: quietLogger(t)}

	publisher := deps.ReceiptPublisher()
	require.NotNil(t, publisher)
	require.NoError(t, publisher.PublishReceipt(context.Background(), domain.Receipt{OrderID: 4}))

	require.NoError(t, deps.Close(context.Background()))
	assert.Nil(t, deps.Outbox)
	assert.Equal(t, []int64{4}, target.received)
}

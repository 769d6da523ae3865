package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}, &orderrepo.StatusUpdateDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_updates").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	item, err := order.NewLineItem(kernel.NewUUID(), 2)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		order.DeliveryMethodHomeDelivery,
		[]order.LineItem{item},
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(loaded))
	suite.Equal(aggregate.DeliveryMethod(), loaded.DeliveryMethod())
	suite.Equal(aggregate.Items(), loaded.Items())
	suite.Equal(order.StatusNew, loaded.Status())
	suite.Equal([]order.Status{order.StatusNew}, loaded.History())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsStatusHistory() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	machine, err := order.NewStateMachine()
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.ChangeStatus(machine, order.StatusProcessing))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusProcessing, loaded.Status())
	suite.Equal([]order.Status{order.StatusNew, order.StatusProcessing}, loaded.History())

	// a second update without status change must not duplicate entries
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))
	loaded, err = suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(loaded.History(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsError() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()

	err := suite.repository.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_ReturnsObjectNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LoadsInsideTransaction() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
		loaded, err := repo.GetForUpdate(ctx, aggregate.ID())
		suite.Require().NoError(err)
		suite.True(aggregate.IsEqual(loaded))
		suite.Equal([]order.Status{order.StatusNew}, loaded.History())
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_MissingOrder_ReturnsObjectNotFound() {
	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
		_, err := repo.GetForUpdate(context.Background(), kernel.NewUUID())
		return err
	})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllWaitingForPaymentSince() {
	ctx := context.Background()

	item, err := order.NewLineItem(kernel.NewUUID(), 1)
	suite.Require().NoError(err)

	stale, err := order.NewUnpaidOrder(
		kernel.NewUUID(), order.DeliveryMethodPickupPoint, []order.LineItem{item},
		time.Now().UTC().Add(-2*time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, stale))

	fresh, err := order.NewUnpaidOrder(
		kernel.NewUUID(), order.DeliveryMethodPickupPoint, []order.LineItem{item},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	paid := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, paid))

	found, err := suite.repository.GetAllWaitingForPaymentSince(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(stale.IsEqual(found[0]))
	suite.Equal(order.StatusWaitingForPayment, found[0].Status())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"posrelay/internal/adapters/out/postgres"
	"posrelay/internal/adapters/out/postgres/orderrepo"
	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for GormOrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(postgres.Migrate(db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database and restart ids before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) details(table int, items []string, notes, price string) order.Details {
	p, err := kernel.PriceFromString(price)
	suite.Require().NoError(err)
	d, err := order.NewDetails(table, items, notes, p)
	suite.Require().NoError(err)
	return d
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCreate_ValidOrder_PersistsWithNewStatus() {
	ctx := context.Background()

	created, err := suite.repository.Create(ctx, suite.details(5, []string{"Burger", "Fries"}, "no onions", "12.50"))
	suite.Require().NoError(err)

	suite.Equal(order.ID("1"), created.ID())
	suite.Equal(5, created.TableNumber())
	suite.Equal([]string{"Burger", "Fries"}, created.Items())
	suite.Equal("no onions", created.Notes())
	suite.Equal("12.50", created.TotalPrice().String())
	suite.Equal(order.New, created.Status())
	suite.WithinDuration(time.Now(), created.CreatedAt(), 5*time.Second)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCreate_AssignsDistinctIDs() {
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan order.ID, 10)
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := kernel.ZeroPrice
			d, err := order.NewDetails(i+1, []string{"Tea"}, "", p)
			if err != nil {
				return
			}
			o, err := suite.repository.Create(ctx, d)
			if err != nil {
				return
			}
			ids <- o.ID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[order.ID]struct{})
	for id := range ids {
		seen[id] = struct{}{}
	}
	suite.Len(seen, 10)
	suite.assertOrderCount(10)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	created, err := suite.repository.Create(ctx, suite.details(3, []string{"Soup"}, "", "4"))
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.True(created.IsEqual(retrieved))
	suite.Equal([]string{"Soup"}, retrieved.Items())
	suite.Equal("4.00", retrieved.TotalPrice().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	for _, id := range []order.ID{"999", "abc", "0"} {
		retrieved, err := suite.repository.Get(ctx, id)
		suite.Nil(retrieved)
		suite.Require().Error(err)

		var notFoundErr *errs.ObjectNotFoundError
		suite.Require().ErrorAs(err, &notFoundErr)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_ReturnsMostRecentFirst() {
	ctx := context.Background()

	first, err := suite.repository.Create(ctx, suite.details(1, []string{"A"}, "", "0"))
	suite.Require().NoError(err)
	second, err := suite.repository.Create(ctx, suite.details(2, []string{"B"}, "", "0"))
	suite.Require().NoError(err)

	orders, err := suite.repository.List(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(second.ID(), orders[0].ID())
	suite.Equal(first.ID(), orders[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_EmptyTable_ReturnsEmptySlice() {
	orders, err := suite.repository.List(context.Background())
	suite.Require().NoError(err)
	suite.NotNil(orders)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetStatus_Transitions() {
	testCases := []struct {
		name  string
		steps []order.Status
	}{
		{name: "forward", steps: []order.Status{order.Preparing, order.Ready}},
		{name: "backward", steps: []order.Status{order.Ready, order.New}},
		{name: "same status", steps: []order.Status{order.New}},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			created, err := suite.repository.Create(ctx, suite.details(7, []string{"Pasta"}, "", "9.99"))
			suite.Require().NoError(err)

			for _, status := range tc.steps {
				updated, err := suite.repository.SetStatus(ctx, created.ID(), status)
				suite.Require().NoError(err)
				suite.Equal(status, updated.Status())

				retrieved, err := suite.repository.Get(ctx, created.ID())
				suite.Require().NoError(err)
				suite.Equal(status, retrieved.Status())
				suite.Equal(created.Items(), retrieved.Items())
			}
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetStatus_InvalidStatus_LeavesOrderUnchanged() {
	ctx := context.Background()

	created, err := suite.repository.Create(ctx, suite.details(2, []string{"Salad"}, "", "0"))
	suite.Require().NoError(err)

	_, err = suite.repository.SetStatus(ctx, created.ID(), order.Status(42))
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)

	retrieved, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(order.New, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetStatus_NonExistentOrder_ReturnsNotFoundError() {
	updated, err := suite.repository.SetStatus(context.Background(), "12345", order.Ready)
	suite.Nil(updated)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCancelledContext_ReturnsStorageError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.repository.Create(ctx, suite.details(1, []string{"Water"}, "", "0"))
	suite.Require().ErrorIs(err, errs.ErrStorage)
	suite.assertOrderCount(0)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

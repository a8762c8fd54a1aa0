package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"devlavka/internal/app/store/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryTestSuite тестовый suite для PostgreSQL repository
type OrderRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  OrderRepository
	sqlDB *sql.DB
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewOrderRepository(s.db)
}

func (s *OrderRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== GetByID Tests =====================

func (s *OrderRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	orderID := uuid.New()
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "project_name", "telegram", "order_type", "status", "created_at"}).
		AddRow(orderID, "Интернет-магазин", "@client", "personal", "pending", createdAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE id = $1`)).
		WithArgs(orderID, 1).
		WillReturnRows(rows)

	order, err := s.repo.GetByID(ctx, orderID)

	s.NoError(err)
	s.NotNil(order)
	s.Equal(orderID, order.ID)
	s.Equal("@client", order.Telegram)
	s.Equal(entity.OrderTypePersonal, order.OrderType)
	s.Equal(entity.OrderStatusPending, order.Status)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OrderRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	orderID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE id = $1`)).
		WithArgs(orderID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	order, err := s.repo.GetByID(ctx, orderID)

	s.ErrorIs(err, ErrOrderNotFound)
	s.Nil(order)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByStatus Tests =====================

func (s *OrderRepositoryTestSuite) TestGetByStatus_Success() {
	ctx := context.Background()
	orderID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "telegram", "order_type", "status"}).
		AddRow(orderID, "@client", "personal", "pending")

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE status = $1`)).
		WithArgs("pending").
		WillReturnRows(rows)

	orders, err := s.repo.GetByStatus(ctx, entity.OrderStatusPending)

	s.NoError(err)
	s.Len(orders, 1)
	s.Equal(entity.OrderStatusPending, orders[0].Status)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OrderRepositoryTestSuite) TestGetByStatus_Empty() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "telegram", "order_type", "status"})

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE status = $1`)).
		WithArgs("pending").
		WillReturnRows(rows)

	orders, err := s.repo.GetByStatus(ctx, entity.OrderStatusPending)

	s.NoError(err)
	s.Empty(orders)
}

// ===================== UpdateStatus Tests =====================

func (s *OrderRepositoryTestSuite) TestUpdateStatus_Success() {
	ctx := context.Background()
	orderID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.UpdateStatus(ctx, orderID, entity.OrderStatusCompleted)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OrderRepositoryTestSuite) TestUpdateStatus_NotFound() {
	ctx := context.Background()
	orderID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.UpdateStatus(ctx, orderID, entity.OrderStatusCompleted)

	s.ErrorIs(err, ErrOrderNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OrderRepositoryTestSuite) TestUpdateStatus_DBError() {
	ctx := context.Background()
	orderID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.UpdateStatus(ctx, orderID, entity.OrderStatusCompleted)

	s.Error(err)
	s.NotErrorIs(err, ErrOrderNotFound)
}

// ===================== Delete Tests =====================

func (s *OrderRepositoryTestSuite) TestDelete_Success() {
	ctx := context.Background()
	orderID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "orders" WHERE id = $1`)).
		WithArgs(orderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, orderID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OrderRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	orderID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "orders" WHERE id = $1`)).
		WithArgs(orderID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, orderID)

	// Заказы, в отличие от каталога, сообщают об отсутствии строки
	s.ErrorIs(err, ErrOrderNotFound)
}

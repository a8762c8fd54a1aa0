package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"devlavka/internal/app/store/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CategoryRepositoryTestSuite тестовый suite для PostgreSQL repository
type CategoryRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  CategoryRepository
	sqlDB *sql.DB
}

func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositoryTestSuite))
}

func (s *CategoryRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewCategoryRepository(s.db)
}

func (s *CategoryRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== GetByID Tests =====================

func (s *CategoryRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	categoryID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "name_translations", "is_active"}).
		AddRow(categoryID, "Сайты", []byte(`{"en":"Websites","ru":"Сайты"}`), true)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE id = $1`)).
		WithArgs(categoryID, 1).
		WillReturnRows(rows)

	category, err := s.repo.GetByID(ctx, categoryID)

	s.NoError(err)
	s.Equal(categoryID, category.ID)
	s.Equal("Сайты", category.Name)
	// jsonb блоб переводов разбирается через Scan
	s.Equal("Websites", category.NameTranslations.EN)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CategoryRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	categoryID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE id = $1`)).
		WithArgs(categoryID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	category, err := s.repo.GetByID(ctx, categoryID)

	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(category)
}

// ===================== GetByIDs Tests =====================

func (s *CategoryRepositoryTestSuite) TestGetByIDs_SkipsUnknown() {
	ctx := context.Background()
	knownID := uuid.New()
	ghostID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "is_active"}).
		AddRow(knownID, "Сайты", true)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE id IN ($1,$2)`)).
		WithArgs(knownID, ghostID).
		WillReturnRows(rows)

	categories, err := s.repo.GetByIDs(ctx, []uuid.UUID{knownID, ghostID})

	s.NoError(err)
	s.Len(categories, 1)
	s.Equal(knownID, categories[0].ID)
}

func (s *CategoryRepositoryTestSuite) TestGetByIDs_EmptyInput() {
	categories, err := s.repo.GetByIDs(context.Background(), nil)

	// Пустой список не ходит в БД
	s.NoError(err)
	s.Nil(categories)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetActive Tests =====================

func (s *CategoryRepositoryTestSuite) TestGetActive_FiltersInactive() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "is_active"}).
		AddRow(uuid.New(), "Сайты", true)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE is_active = $1`)).
		WithArgs(true).
		WillReturnRows(rows)

	categories, err := s.repo.GetActive(ctx)

	s.NoError(err)
	s.Len(categories, 1)
	s.True(categories[0].IsActive)
}

// ===================== Update Tests =====================

func (s *CategoryRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "categories" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Update(ctx, &entity.Category{ID: uuid.New(), Name: "Сайты"})

	s.ErrorIs(err, ErrCategoryNotFound)
}

// ===================== Delete Tests =====================

func (s *CategoryRepositoryTestSuite) TestDelete_AbsentIsNoop() {
	ctx := context.Background()
	categoryID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "categories" WHERE id = $1`)).
		WithArgs(categoryID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, categoryID)

	// Ноль затронутых строк не является ошибкой для каталога
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

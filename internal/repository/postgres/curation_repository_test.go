package postgres

import (
	"context"
	"testing"

	"pasarKarya/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func sampleReview() *domain.Review {
	return &domain.Review{
		ProductID:    11,
		CuratorID:    3,
		Score1:       3, Score2: 3, Score3: 3, Score4: 3,
		Score5:       3, Score6: 3, Score7: 3, Score8: 3,
		TotalScore:   24,
		AverageScore: 3.00,
		PointsEarned: 200,
		Comment:      "layak jual",
	}
}

func TestCurationRepository_ApplyReview(t *testing.T) {
	t.Run("all four effects commit together", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "category", "status"}).
				AddRow(11, 7, domain.CategorySoftware, string(domain.ProductPending)))
		mock.ExpectQuery(`INSERT INTO "reviews"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET "curator_points"=curator_points \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET "seller_points"=seller_points \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyReview(context.Background(), sampleReview(), domain.ProductApproved, 10, 200)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already reviewed product rolls back with invalid state", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "category", "status"}).
				AddRow(11, 7, domain.CategorySoftware, string(domain.ProductApproved)))
		mock.ExpectRollback()

		err := repo.ApplyReview(context.Background(), sampleReview(), domain.ProductApproved, 10, 200)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product rolls back with not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.ApplyReview(context.Background(), sampleReview(), domain.ProductApproved, 10, 200)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("conditional status flip losing the race rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "category", "status"}).
				AddRow(11, 7, domain.CategorySoftware, string(domain.ProductPending)))
		mock.ExpectQuery(`INSERT INTO "reviews"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ApplyReview(context.Background(), sampleReview(), domain.ProductApproved, 10, 200)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("curator credit failure rolls everything back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "category", "status"}).
				AddRow(11, 7, domain.CategorySoftware, string(domain.ProductPending)))
		mock.ExpectQuery(`INSERT INTO "reviews"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "users" SET "curator_points"=curator_points \+ \$1`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.ApplyReview(context.Background(), sampleReview(), domain.ProductApproved, 10, 200)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCurationRepository_CreateSubmission(t *testing.T) {
	t.Run("product insert and seller credit commit together", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec(`UPDATE "users" SET "seller_points"=seller_points \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		product := &domain.Product{
			SellerID:    7,
			ProductName: "Belajar Go",
			Category:    domain.CategoryEbook,
			Price:       50000,
			Status:      domain.ProductPending,
		}

		err := repo.CreateSubmission(context.Background(), product, 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(21), product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing seller rolls back the product insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCurationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec(`UPDATE "users" SET "seller_points"=seller_points \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		product := &domain.Product{
			SellerID:    999,
			ProductName: "Belajar Go",
			Category:    domain.CategoryEbook,
			Price:       50000,
			Status:      domain.ProductPending,
		}

		err := repo.CreateSubmission(context.Background(), product, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_ApproveCurator(t *testing.T) {
	t.Run("conditional update flips approval", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApproveCurator(context.Background(), 5, 100)
		assert.NoError(t, err)
	})

	t.Run("already approved curator is invalid state", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ApproveCurator(context.Background(), 5, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestOrdersRepository_CreateOrder(t *testing.T) {
	t.Run("stock decremented with the order insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewOrdersRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
		mock.ExpectCommit()

		order := &domain.Order{OrderCode: "PK-1", UserID: 9, ProductID: 11, Quantity: 1, PriceEach: 50000, Subtotal: 50000, OrderStatus: "COMPLETED"}
		err := repo.CreateOrder(context.Background(), order)
		assert.NoError(t, err)
	})

	t.Run("out of stock is invalid state", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewOrdersRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		order := &domain.Order{OrderCode: "PK-2", UserID: 9, ProductID: 11, Quantity: 3}
		err := repo.CreateOrder(context.Background(), order)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

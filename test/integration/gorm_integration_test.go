package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/repository/specification"
	"paint-estimate-be/internal/repository/unitofwork"
	"paint-estimate-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.EstimateRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Estimate Repository", func(t *testing.T) {
		count, err := uow.EstimateRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Estimate count: %d", count)
	})

	t.Run("Estimate CRUD Round Trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		estimate := &entity.Estimate{
			Id:          uuid.New(),
			UserId:      userId,
			ProjectType: entity.ProjectInterior,
			ClientNotes: "Integration test estimate",
			Rooms: []entity.CanonicalRoom{
				{Id: "kitchen", Label: "Kitchen", Walls: true, Doors: 2, Confidence: 1},
			},
			LineItems: []entity.LineItem{
				{Id: uuid.New(), Description: "Kitchen - Paint Walls", Quantity: 1, Unit: "room", UnitPrice: 400, Total: 400},
			},
			Totals:  entity.Totals{Subtotal: 400, Tax: 32, Total: 432},
			TaxRate: 0.08,
		}

		err := uow.EstimateRepository().Create(ctx, estimate)
		assert.NoError(t, err)

		found, err := uow.EstimateRepository().FindOne(ctx,
			specification.ByID{ID: estimate.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, entity.ProjectInterior, found.ProjectType)
			assert.Len(t, found.Rooms, 1)
			assert.Equal(t, "kitchen", found.Rooms[0].Id)
			assert.Equal(t, 432.0, found.Totals.Total)
		}

		err = uow.EstimateRepository().Delete(ctx, estimate.Id)
		assert.NoError(t, err)

		gone, err := uow.EstimateRepository().FindOne(ctx, specification.ByID{ID: estimate.Id})
		assert.NoError(t, err)
		assert.Nil(t, gone)
	})
}

package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/repository/specification"
	"kurazhelp-be/internal/repository/unitofwork"
	"kurazhelp-be/pkg/database"
	"kurazhelp-be/pkg/textutil"

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

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.PreferenceRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Transactional Document Create", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		hash := "not-a-real-hash"
		user := &entity.User{
			Id:           userId,
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			PasswordHash: &hash,
			FullName:     "Integration Test User",
			Status:       entity.UserStatusActive,
		}

		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		content := "one two three four five"
		doc := &entity.Document{
			Id:         uuid.New(),
			Title:      "Integration Doc",
			Content:    content,
			WordCount:  textutil.WordCount(content),
			UserId:     userId,
			LastEdited: time.Now(),
		}

		err = uow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		// Read it back through the ownership spec
		found, err := uow.DocumentRepository().FindOne(ctx,
			specification.ByID{ID: doc.Id},
			specification.DocumentOwnedByUser{UserID: userId},
		)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, 5, found.WordCount)
			assert.Equal(t, "Integration Doc", found.Title)
		}

		t.Log("Successfully created Document in Transaction")
	})
}

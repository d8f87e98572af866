package repository

import (
	"Campus/internal/models"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupTestMongo connects to MONGO_TEST_URL and hands out a throwaway
// database, skipping the test when no server is configured.
func setupTestMongo(t *testing.T) *mongo.Database {
	t.Helper()
	url := os.Getenv("MONGO_TEST_URL")
	if url == "" {
		t.Skip("MONGO_TEST_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("campus_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMongoCourseRepository(ctx, setupTestMongo(t))
	require.NoError(t, err)

	first := &models.Course{Code: "CS101", Name: "Intro"}
	second := &models.Course{Code: "CS102", Name: "Algorithms"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	found, err := repo.FindByCode(ctx, "CS102")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, second.ID, found.ID)

	first.Name = "Introduction"
	require.NoError(t, repo.Update(ctx, first))
	found, err = repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Introduction", found.Name)

	assert.ErrorIs(t, repo.Update(ctx, &models.Course{BaseModel: models.BaseModel{ID: 99}}), ErrNotFound)
	assert.ErrorIs(t, repo.Create(ctx, &models.Course{BaseModel: models.BaseModel{ID: 1}}), ErrDuplicateID)

	require.NoError(t, repo.DeleteByID(ctx, first.ID))
	found, err = repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMongoStudentRepository_FindByCourse(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMongoStudentRepository(ctx, setupTestMongo(t))
	require.NoError(t, err)

	courseID := uint(3)
	enrolled := &models.Student{FirstName: "Ada", Email: "ada@example.com", CourseID: &courseID}
	require.NoError(t, repo.Create(ctx, enrolled))
	require.NoError(t, repo.Create(ctx, &models.Student{FirstName: "Alan", Email: "alan@example.com"}))
	assert.NotEqual(t, uuid.Nil, enrolled.ID)

	students, err := repo.FindByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, enrolled.ID, students[0].ID)
}

func TestMongoCourseRepository_SuppliedIDAdvancesCounter(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMongoCourseRepository(ctx, setupTestMongo(t))
	require.NoError(t, err)

	supplied := &models.Course{Code: "S", Name: "Supplied"}
	supplied.ID = 1
	require.NoError(t, repo.Create(ctx, supplied))

	generated := &models.Course{Code: "G", Name: "Generated"}
	require.NoError(t, repo.Create(ctx, generated))
	assert.Equal(t, uint(2), generated.ID)
}

func TestMongoCourseRepository_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMongoCourseRepository(ctx, setupTestMongo(t))
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &models.Course{Code: "UNIQ", Name: "Original"}))
	copied := &models.Course{Code: "UNIQ", Name: "Copy"}
	err = repo.Create(ctx, copied)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Zero(t, copied.ID)
}

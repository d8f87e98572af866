package repository

import (
	"Campus/database"
	"Campus/internal/models"
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log, _ := test.NewNullLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         database.NewGormLogger(log),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.Student{}))
	return db
}

func setupTestBolt(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "campus.bolt"), 0600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func courseBackends(t *testing.T) map[string]func() CourseRepository {
	return map[string]func() CourseRepository{
		"memory": NewMemoryCourseRepository,
		"sqlite": func() CourseRepository { return NewCourseRepository(setupTestDB(t)) },
		"bolt": func() CourseRepository {
			repo, err := NewBoltCourseRepository(setupTestBolt(t))
			require.NoError(t, err)
			return repo
		},
	}
}

func studentBackends(t *testing.T) map[string]func() StudentRepository {
	return map[string]func() StudentRepository{
		"memory": NewMemoryStudentRepository,
		"sqlite": func() StudentRepository { return NewStudentRepository(setupTestDB(t)) },
		"bolt": func() StudentRepository {
			repo, err := NewBoltStudentRepository(setupTestBolt(t))
			require.NoError(t, err)
			return repo
		},
	}
}

func courseIDs(courses []models.Course) []uint {
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

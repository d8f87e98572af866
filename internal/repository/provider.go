package repository

import (
	"Campus/database"
	"Campus/internal/config"
	"context"
	"fmt"
)

// ProvideCourseRepository picks the course repository for the store's backend.
func ProvideCourseRepository(store *database.Store) (CourseRepository, error) {
	switch store.Backend {
	case config.BackendPostgres, config.BackendSQLite:
		return NewCourseRepository(store.SQL), nil
	case config.BackendBolt:
		return NewBoltCourseRepository(store.Bolt)
	case config.BackendMongo:
		return NewMongoCourseRepository(context.Background(), store.Mongo)
	case config.BackendMemory:
		return NewMemoryCourseRepository(), nil
	}
	return nil, fmt.Errorf("unknown database backend %q", store.Backend)
}

func ProvideStudentRepository(store *database.Store) (StudentRepository, error) {
	switch store.Backend {
	case config.BackendPostgres, config.BackendSQLite:
		return NewStudentRepository(store.SQL), nil
	case config.BackendBolt:
		return NewBoltStudentRepository(store.Bolt)
	case config.BackendMongo:
		return NewMongoStudentRepository(context.Background(), store.Mongo)
	case config.BackendMemory:
		return NewMemoryStudentRepository(), nil
	}
	return nil, fmt.Errorf("unknown database backend %q", store.Backend)
}

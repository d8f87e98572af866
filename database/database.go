package database

import (
	"Campus/internal/config"
	"Campus/internal/models"
	"context"
	"fmt"
	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Store holds the handle of whichever backend the configuration selected.
// Exactly one of SQL, Bolt and Mongo is set, none for the memory backend.
type Store struct {
	Backend string
	SQL     *gorm.DB
	Bolt    *bolt.DB
	Mongo   *mongo.Database
}

// NewGormLogger sends gorm's warnings and errors to appLogger. Missing
// records are an expected outcome of lookups and are not logged.
func NewGormLogger(appLogger *logrus.Logger) logger.Interface {
	if appLogger == nil {
		appLogger = logrus.StandardLogger()
	}
	return logger.New(appLogger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func Open(cfg *config.Configuration, appLogger *logrus.Logger) (*Store, error) {
	store := &Store{Backend: cfg.Database.Backend}
	var err error
	switch cfg.Database.Backend {
	case config.BackendPostgres, config.BackendSQLite:
		store.SQL, err = SetupDatabase(cfg, appLogger)
	case config.BackendBolt:
		store.Bolt, err = OpenBolt(cfg.Database.Path)
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Mongo.Timeout)
		defer cancel()
		store.Mongo, err = ConnectMongo(ctx, cfg.Database.Mongo)
	case config.BackendMemory:
	default:
		err = fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideStore opens the configured backend and returns a cleanup that
// closes it.
func ProvideStore(cfg *config.Configuration, appLogger *logrus.Logger) (*Store, func(), error) {
	store, err := Open(cfg, appLogger)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func SetupDatabase(cfg *config.Configuration, appLogger *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Database.Backend == config.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dialector = sqlite.Open(cfg.Database.Path)
	} else {
		dsn, err := postgresDSN()
		if err != nil {
			return nil, err
		}
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(appLogger),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(models.Course{}, models.Student{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func postgresDSN() (string, error) {
	var envVariables = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TZ"}
	for _, envVariable := range envVariables {
		if os.Getenv(envVariable) == "" && envVariable != "DB_SSLMODE" {
			return "", fmt.Errorf("%s environment variable not set", envVariable)
		}
		if envVariable == "DB_SSLMODE" && os.Getenv(envVariable) == "" {
			err := os.Setenv("DB_SSLMODE", "disable")
			if err != nil {
				return "", err
			}
		}
	}
	return os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}"), nil
}

func OpenBolt(path string) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)
	if cfg.Auth.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("can't connect to mongo db: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("can't ping mongo db: %w", err)
	}
	return client.Database(cfg.Database), nil
}

func (s *Store) Close() {
	switch {
	case s.SQL != nil:
		CloseDatabase(s.SQL)
	case s.Bolt != nil:
		if err := s.Bolt.Close(); err != nil {
			log.Printf("Error closing bolt database: %v", err)
		}
	case s.Mongo != nil:
		if err := s.Mongo.Client().Disconnect(context.Background()); err != nil {
			log.Printf("Error closing mongo connection: %v", err)
		}
	}
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

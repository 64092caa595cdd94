package db

import (
	"errors"
	"fmt"
	"sync"

	"github.com/d2r2/go-logger"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var lg = logger.NewPackageLogger("db", logger.InfoLevel)

const Use24HourKey = "Use24Hour"

// KVStore represents the database schema
type KVStore struct {
	Key   string `gorm:"primaryKey;uniqueIndex"`
	Value any    `gorm:"serializer:json"`
}

// Store is the persisted settings table.
type Store struct {
	db   *gorm.DB
	lock sync.Mutex
}

// Opens (and migrates) the settings database at path.
func Open(path string) (*Store, error) {
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening settings db %s failed: %w", path, err)
	}
	if err := database.AutoMigrate(&KVStore{}); err != nil {
		return nil, fmt.Errorf("migrating settings db failed: %w", err)
	}
	lg.Debugf("Opened settings db %s", path)
	return &Store{db: database}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the stored value, or nil when the key does not exist.
func (s *Store) Get(key string) any {
	s.lock.Lock()
	defer s.lock.Unlock()

	var row KVStore
	err := s.db.Where(&KVStore{Key: key}).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			lg.Errorf("⚠️ Reading %s failed: %v", key, err)
		}
		return nil
	}
	return row.Value
}

func (s *Store) Set(key string, value any) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.db.Save(&KVStore{Key: key, Value: value}).Error; err != nil {
		return fmt.Errorf("writing %s failed: %w", key, err)
	}
	return nil
}

// SetOrCreate writes value only if key has never been set.
func (s *Store) SetOrCreate(key string, value any) error {
	if s.Get(key) != nil {
		return nil
	}
	return s.Set(key, value)
}

// Is24HourMode reads the display format preference straight from the
// database, so changes made while running are picked up.
func (s *Store) Is24HourMode() bool {
	is24h, ok := s.Get(Use24HourKey).(bool)
	return ok && is24h
}

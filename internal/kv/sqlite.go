package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Record is one persisted document: a key and its JSON value.
type Record struct {
	Key   string `gorm:"primary_key;column:key"`
	Value string `gorm:"column:value;type:text"`
}

// TableName fixes the table name for gorm.
func (Record) TableName() string {
	return "kv_records"
}

// SQLiteStore persists documents in a single SQLite table, one row per key.
// Each Set replaces the row inside a transaction, keeping the
// whole-document-replace contract.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the database file and migrates the
// records table.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string, into interface{}) (bool, error) {
	var rec Record
	err := s.db.Where("key = ?", key).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(rec.Value), into); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	res := tx.Model(&Record{}).Where("key = ?", key).Update("value", string(raw))
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&Record{Key: key, Value: string(raw)}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.db.Where("key = ?", key).Delete(&Record{}).Error
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordCollection 一行保存一个完整集合
type RecordCollection struct {
	Name      string         `gorm:"primaryKey;size:191"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (RecordCollection) TableName() string {
	return "record_collections"
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&RecordCollection{}); err != nil {
		return nil, err
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var row RecordCollection
	err := s.DB.WithContext(ctx).Where("name = ?", collection).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeArray(collection, row.Payload)
}

func (s *GormStore) Write(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := encodeArray(collection, records)
	if err != nil {
		return err
	}
	row := RecordCollection{
		Name:      collection,
		Payload:   datatypes.JSON(data),
		UpdatedAt: time.Now(),
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

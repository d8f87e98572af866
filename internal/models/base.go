package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Entity is implemented by every persisted model so storage backends can
// read and assign its identifier.
type Entity[ID comparable] interface {
	GetID() ID
	SetID(id ID)
}

// Model is satisfied by a pointer to an entity struct T keyed by ID.
type Model[T any, ID comparable] interface {
	*T
	Entity[ID]
}

type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id" bson:"_id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at" bson:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" bson:"-" swaggerignore:"true"`
}

func (m *BaseModel) GetID() uint {
	return m.ID
}

func (m *BaseModel) SetID(id uint) {
	m.ID = id
}

type UUIDModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at" bson:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" bson:"-" swaggerignore:"true"`
}

func (m *UUIDModel) GetID() uuid.UUID {
	return m.ID
}

func (m *UUIDModel) SetID(id uuid.UUID) {
	m.ID = id
}

// BeforeCreate assigns a random ID when the caller did not supply one.
func (m *UUIDModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Stamper lets backends without automatic timestamps maintain CreatedAt and
// UpdatedAt themselves.
type Stamper interface {
	Created() time.Time
	Touch(created, now time.Time)
	ResetTimestamps()
}

func (m *BaseModel) Created() time.Time {
	return m.CreatedAt
}

// Touch sets UpdatedAt to now and CreatedAt to created, or to now when
// created is zero.
func (m *BaseModel) Touch(created, now time.Time) {
	if created.IsZero() {
		created = now
	}
	m.CreatedAt = created
	m.UpdatedAt = now
}

func (m *UUIDModel) Created() time.Time {
	return m.CreatedAt
}

func (m *UUIDModel) Touch(created, now time.Time) {
	if created.IsZero() {
		created = now
	}
	m.CreatedAt = created
	m.UpdatedAt = now
}

// ResetTimestamps clears every bookkeeping time so client input cannot set
// them.
func (m *BaseModel) ResetTimestamps() {
	m.CreatedAt = time.Time{}
	m.UpdatedAt = time.Time{}
	m.DeletedAt = gorm.DeletedAt{}
}

func (m *UUIDModel) ResetTimestamps() {
	m.CreatedAt = time.Time{}
	m.UpdatedAt = time.Time{}
	m.DeletedAt = gorm.DeletedAt{}
}

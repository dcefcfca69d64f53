package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Usuario is an authentication identity. The username is the holder's CURP.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CURP         string    `gorm:"size:18;uniqueIndex;not null" json:"curp"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Staff        bool      `gorm:"default:false" json:"staff"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Trabajador *Trabajador `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"trabajador,omitempty"`
}

func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (Usuario) TableName() string { return "usuarios" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trabajador is the worker profile, one per account. Scholars and applications
// can only be registered after staff flips Aprobado.
type Trabajador struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"usuario_id"`

	Nombre          string  `gorm:"size:128;not null" json:"nombre"`
	ApellidoPaterno string  `gorm:"size:128;not null" json:"apellido_paterno"`
	ApellidoMaterno *string `gorm:"size:128" json:"apellido_materno,omitempty"`
	CURPArchivo     string  `gorm:"size:255;not null" json:"curp_archivo"`

	Telefono string `gorm:"size:10;not null" json:"telefono"`
	Correo   string `gorm:"size:254;not null" json:"correo"`

	SeccionID          uint             `gorm:"not null" json:"seccion_id"`
	Seccion            Seccion          `gorm:"constraint:OnDelete:RESTRICT" json:"seccion"`
	PuestoID           uint             `gorm:"not null" json:"puesto_id"`
	Puesto             Puesto           `gorm:"constraint:OnDelete:RESTRICT" json:"puesto"`
	JurisdiccionID     uint             `gorm:"not null" json:"jurisdiccion_id"`
	Jurisdiccion       Jurisdiccion     `gorm:"constraint:OnDelete:RESTRICT" json:"jurisdiccion"`
	LugarAdscripcionID uint             `gorm:"not null" json:"lugar_adscripcion_id"`
	LugarAdscripcion   LugarAdscripcion `gorm:"constraint:OnDelete:RESTRICT" json:"lugar_adscripcion"`

	// Flipped only by staff through the admin surface.
	Aprobado bool `gorm:"default:false" json:"aprobado"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Trabajador) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Trabajador) TableName() string { return "trabajadores" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estado is the review status of an application. A flat label set, not an
// ordered chain; every transition after creation is a staff decision.
type Estado string

const (
	EstadoRecibida   Estado = "R" // solicitud recibida
	EstadoError      Estado = "E" // error en documentos, revisar notas
	EstadoEnEspera   Estado = "P" // en espera de resultados
	EstadoOtorgada   Estado = "T" // beca otorgada
	EstadoNoOtorgada Estado = "F" // beca no otorgada
)

func (e Estado) Valid() bool {
	switch e {
	case EstadoRecibida, EstadoError, EstadoEnEspera, EstadoOtorgada, EstadoNoOtorgada:
		return true
	}
	return false
}

// EstadosEnCurso is the in-flight set: a scholar may hold at most one
// application per category whose estado is in this set.
var EstadosEnCurso = []Estado{EstadoRecibida, EstadoEnEspera}

// EstadosActivos blocks scholar edits: anything not yet denied.
var EstadosActivos = []Estado{EstadoRecibida, EstadoEnEspera, EstadoOtorgada}

// Categoria discriminates the three application kinds.
type Categoria string

const (
	CategoriaAprovechamiento Categoria = "aprovechamiento"
	CategoriaExcelencia      Categoria = "excelencia"
	CategoriaEspecial        Categoria = "especial"
)

func (c Categoria) Valid() bool {
	switch c {
	case CategoriaAprovechamiento, CategoriaExcelencia, CategoriaEspecial:
		return true
	}
	return false
}

// Categorias lists the three categories in display order.
var Categorias = []Categoria{CategoriaAprovechamiento, CategoriaExcelencia, CategoriaEspecial}

// SolicitudBase carries the fields shared by the three application variants.
// Each variant gets its own table; the in-flight uniqueness constraint is a
// partial unique index per table, created in bootstrap.
type SolicitudBase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BecarioID uuid.UUID `gorm:"type:uuid;not null;index" json:"becario_id"`
	Becario   Becario   `gorm:"constraint:OnDelete:CASCADE" json:"becario"`

	FechaSolicitud time.Time `gorm:"not null" json:"fecha_solicitud"`

	// Payroll receipt and national ID of the worker.
	ReciboNomina string `gorm:"size:255;not null" json:"recibo_nomina"`
	INE          string `gorm:"size:255;not null" json:"ine"`

	Estado Estado  `gorm:"size:1;not null;default:R" json:"estado"`
	Notas  *string `gorm:"type:text" json:"notas,omitempty"`
}

func (s *SolicitudBase) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SolicitudAprovechamiento struct {
	SolicitudBase

	GradoID  uint    `gorm:"not null" json:"grado_id"`
	Grado    Grado   `gorm:"constraint:OnDelete:RESTRICT" json:"grado"`
	Promedio float64 `gorm:"not null" json:"promedio"`
	Boleta   string  `gorm:"size:255;not null" json:"boleta"`
}

type SolicitudExcelencia struct {
	SolicitudBase

	GradoID  uint    `gorm:"not null" json:"grado_id"`
	Grado    Grado   `gorm:"constraint:OnDelete:RESTRICT" json:"grado"`
	Promedio float64 `gorm:"not null" json:"promedio"`
	Boleta   string  `gorm:"size:255;not null" json:"boleta"`
	Carrera  string  `gorm:"size:128;not null" json:"carrera"`
}

type SolicitudEspecial struct {
	SolicitudBase

	DiagnosticoMedico  string `gorm:"size:128;not null" json:"diagnostico_medico"`
	TipoEducacion      string `gorm:"size:128;not null" json:"tipo_educacion"`
	CertificadoMedico  string `gorm:"size:255;not null" json:"certificado_medico"`
	CertificadoEscolar string `gorm:"size:255;not null" json:"certificado_escolar"`
}

func (SolicitudAprovechamiento) TableName() string { return "solicitudes_aprovechamiento" }
func (SolicitudExcelencia) TableName() string      { return "solicitudes_excelencia" }
func (SolicitudEspecial) TableName() string        { return "solicitudes_especial" }

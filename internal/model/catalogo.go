package model

import "fmt"

// Reference data. Lookup tables with no behavior beyond identity and display;
// they are loaded at bootstrap or through cmd/seed and never mutated by the
// application flow.

type Seccion struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Numero int  `gorm:"not null" json:"numero"`
}

type Puesto struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Clave string `gorm:"size:8;not null" json:"clave"`
}

type Jurisdiccion struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Clave string `gorm:"size:4;not null" json:"clave"`
}

type LugarAdscripcion struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Alias  *string `gorm:"size:32" json:"alias,omitempty"`
	Nombre string  `gorm:"size:128;not null" json:"nombre"`
}

type Grado struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Clave  string `gorm:"size:4;not null" json:"clave"`
	Nombre string `gorm:"size:64;not null" json:"nombre"`
}

func (g Grado) String() string {
	return fmt.Sprintf("%s - %s", g.Clave, g.Nombre)
}

func (Seccion) TableName() string          { return "secciones" }
func (Puesto) TableName() string           { return "puestos" }
func (Jurisdiccion) TableName() string     { return "jurisdicciones" }
func (LugarAdscripcion) TableName() string { return "lugares_adscripcion" }
func (Grado) TableName() string            { return "grados" }

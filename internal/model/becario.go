package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Becario is a worker's dependent, the beneficiary of scholarship
// applications. Ownership is by the registering account, not the Trabajador
// row.
type Becario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index" json:"usuario_id"`

	Nombre          string  `gorm:"size:128;not null" json:"nombre"`
	ApellidoPaterno string  `gorm:"size:128;not null" json:"apellido_paterno"`
	ApellidoMaterno *string `gorm:"size:128" json:"apellido_materno,omitempty"`
	CURP            string  `gorm:"size:18;not null" json:"curp"`
	CURPArchivo     string  `gorm:"size:255;not null" json:"curp_archivo"`
	ActaNacimiento  string  `gorm:"size:255;not null" json:"acta_nacimiento"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Becario) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Sexo extracts the sex from the CURP: 'H' male, 'M' female.
func (b *Becario) Sexo() string {
	if len(b.CURP) != 18 {
		return ""
	}
	return string(b.CURP[10])
}

// FechaNacimiento composes the birth date ("YYYY-MM-DD") from the CURP digit
// block. Two-digit years above 23 are taken as 19xx, the rest as 20xx; the
// CURP does not carry the century, so this is an approximation.
func (b *Becario) FechaNacimiento() string {
	if len(b.CURP) != 18 {
		return ""
	}

	year := b.CURP[4:6]
	month := b.CURP[6:8]
	day := b.CURP[8:10]

	yy, err := strconv.Atoi(year)
	if err != nil {
		return ""
	}

	century := "20"
	if yy > 23 {
		century = "19"
	}

	return fmt.Sprintf("%s%s-%s-%s", century, year, month, day)
}

func (Becario) TableName() string { return "becarios" }

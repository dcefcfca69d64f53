package bootstrap

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Seccion{},
		&model.Puesto{},
		&model.Jurisdiccion{},
		&model.LugarAdscripcion{},
		&model.Grado{},
		&model.Usuario{},
		&model.Trabajador{},
		&model.Becario{},
		&model.SolicitudAprovechamiento{},
		&model.SolicitudExcelencia{},
		&model.SolicitudEspecial{},
	); err != nil {
		return err
	}

	return ensureConstraints(db)
}

// ensureConstraints creates the partial unique indexes enforcing the
// one-in-flight-application-per-category invariant. AutoMigrate cannot
// express a conditional index, so they are raw SQL; the condition must match
// the estado set the services pre-check against.
func ensureConstraints(db *gorm.DB) error {
	for _, table := range []string{
		"solicitudes_aprovechamiento",
		"solicitudes_excelencia",
		"solicitudes_especial",
	} {
		stmt := fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_en_curso ON %s (becario_id) WHERE estado IN ('R', 'P')`,
			table, table,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create in-flight index on %s: %w", table, err)
		}
	}

	return nil
}

// SeedCatalogos loads a minimal reference-data set so a fresh install is
// usable; cmd/seed replaces it with the real catalogs.
func SeedCatalogos(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Grado{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	grados := []model.Grado{
		{Clave: "PRI", Nombre: "Primaria"},
		{Clave: "SEC", Nombre: "Secundaria"},
		{Clave: "PREP", Nombre: "Preparatoria"},
		{Clave: "LIC", Nombre: "Licenciatura"},
	}
	if err := db.Create(&grados).Error; err != nil {
		return err
	}

	secciones := []model.Seccion{{Numero: 1}, {Numero: 2}, {Numero: 3}}
	if err := db.Create(&secciones).Error; err != nil {
		return err
	}

	puestos := []model.Puesto{{Clave: "ADMIN"}, {Clave: "ENF"}, {Clave: "MED"}}
	if err := db.Create(&puestos).Error; err != nil {
		return err
	}

	jurisdicciones := []model.Jurisdiccion{{Clave: "J01"}, {Clave: "J02"}}
	if err := db.Create(&jurisdicciones).Error; err != nil {
		return err
	}

	lugares := []model.LugarAdscripcion{
		{Nombre: "Hospital General"},
		{Nombre: "Centro de Salud Norte"},
	}
	return db.Create(&lugares).Error
}

// SeedStaffUser creates the review account used by staff in development.
func SeedStaffUser(db *gorm.DB) error {
	curp := os.Getenv("STAFF_CURP")
	if curp == "" {
		curp = "AAAA800101HDFXXXA1"
	}

	password := os.Getenv("STAFF_PASSWORD")
	if password == "" {
		password = "staff-inicial"
	}

	var count int64
	if err := db.Model(&model.Usuario{}).Where("curp = ?", curp).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("staff user already exists, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := model.Usuario{
		CURP:         curp,
		PasswordHash: string(hash),
		Staff:        true,
	}

	if err := db.Create(&staff).Error; err != nil {
		return err
	}

	log.Info().Str("curp", curp).Msg("staff user seeded")
	return nil
}

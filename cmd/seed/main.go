// Command seed loads the real reference catalogs from CSV files into the
// database, replacing the minimal bootstrap defaults. Each catalog is read
// from <dir>/<tabla>.csv; files that do not exist are skipped.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/pkg/database"
)

type resultado struct {
	catalogo   string
	insertados int
	omitidos   int
	errores    int
}

func main() {
	dir := flag.String("dir", "seeds", "directory containing the catalog CSV files")
	flag.Parse()

	_ = godotenv.Load()

	db := database.Connect()

	color.Cyan("=== Carga de catálogos ===")

	resultados := []resultado{
		cargar(db, *dir, "secciones", parseSeccion),
		cargar(db, *dir, "puestos", parsePuesto),
		cargar(db, *dir, "jurisdicciones", parseJurisdiccion),
		cargar(db, *dir, "lugares_adscripcion", parseLugar),
		cargar(db, *dir, "grados", parseGrado),
	}

	imprimirResumen(resultados)
}

// cargar reads <dir>/<catalogo>.csv and upserts each row. The first row is
// treated as a header and skipped.
func cargar(db *gorm.DB, dir, catalogo string, parse func(*gorm.DB, []string) (bool, error)) resultado {
	res := resultado{catalogo: catalogo}

	path := filepath.Join(dir, catalogo+".csv")
	f, err := os.Open(path)
	if err != nil {
		color.Yellow("  %s: archivo no encontrado, se omite (%s)", catalogo, path)
		return res
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			color.Red("  %s: fila inválida: %v", catalogo, err)
			res.errores++
			continue
		}
		if header {
			header = false
			continue
		}

		created, err := parse(db, record)
		switch {
		case err != nil:
			color.Red("  %s: %v (%s)", catalogo, err, strings.Join(record, ","))
			res.errores++
		case created:
			res.insertados++
		default:
			res.omitidos++
		}
	}

	return res
}

// Each parser returns true when a new row was inserted, false when an
// identical row already existed.

func parseSeccion(db *gorm.DB, record []string) (bool, error) {
	if len(record) < 1 {
		return false, fmt.Errorf("se esperaba al menos 1 columna")
	}
	numero, err := strconv.Atoi(record[0])
	if err != nil {
		return false, fmt.Errorf("número de sección inválido: %q", record[0])
	}
	return upsert(db, &model.Seccion{Numero: numero}, "numero = ?", numero)
}

func parsePuesto(db *gorm.DB, record []string) (bool, error) {
	if len(record) < 1 || record[0] == "" {
		return false, fmt.Errorf("clave de puesto vacía")
	}
	clave := strings.ToUpper(record[0])
	return upsert(db, &model.Puesto{Clave: clave}, "clave = ?", clave)
}

func parseJurisdiccion(db *gorm.DB, record []string) (bool, error) {
	if len(record) < 1 || record[0] == "" {
		return false, fmt.Errorf("clave de jurisdicción vacía")
	}
	clave := strings.ToUpper(record[0])
	return upsert(db, &model.Jurisdiccion{Clave: clave}, "clave = ?", clave)
}

func parseLugar(db *gorm.DB, record []string) (bool, error) {
	if len(record) < 1 || record[0] == "" {
		return false, fmt.Errorf("nombre de lugar vacío")
	}
	lugar := model.LugarAdscripcion{Nombre: record[0]}
	if len(record) > 1 && record[1] != "" {
		alias := record[1]
		lugar.Alias = &alias
	}
	return upsert(db, &lugar, "nombre = ?", lugar.Nombre)
}

func parseGrado(db *gorm.DB, record []string) (bool, error) {
	if len(record) < 2 || record[0] == "" || record[1] == "" {
		return false, fmt.Errorf("se esperaban columnas clave,nombre")
	}
	clave := strings.ToUpper(record[0])
	return upsert(db, &model.Grado{Clave: clave, Nombre: record[1]}, "clave = ?", clave)
}

func upsert(db *gorm.DB, value any, query string, args ...any) (bool, error) {
	result := db.Where(query, args...).FirstOrCreate(value)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func imprimirResumen(resultados []resultado) {
	color.Cyan("\nResumen")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Catálogo", "Insertados", "Omitidos", "Errores"})

	totalErrores := 0
	for _, r := range resultados {
		table.Append([]string{
			r.catalogo,
			strconv.Itoa(r.insertados),
			strconv.Itoa(r.omitidos),
			strconv.Itoa(r.errores),
		})
		totalErrores += r.errores
	}
	table.Render()

	if totalErrores > 0 {
		color.Red("\nCarga terminada con %d errores", totalErrores)
		os.Exit(1)
	}
	color.Green("\nCarga completada")
}

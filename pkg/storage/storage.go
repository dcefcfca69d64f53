package storage

import (
	"context"
	"mime/multipart"
)

// Document categories. Each category maps to a subdirectory of the media root.
const (
	CategoriaCURP               = "curp"
	CategoriaActaNacimiento     = "acta_nacimiento"
	CategoriaReciboNomina       = "recibo_nomina"
	CategoriaINE                = "ine"
	CategoriaBoleta             = "boleta"
	CategoriaCertificadoMedico  = "certificado_medico"
	CategoriaCertificadoEscolar = "certificado_escolar"
)

// DocumentStorage defines the contract for the uploaded-document store.
type DocumentStorage interface {
	// Save stores an uploaded file under the given category and returns the
	// relative path ("<categoria>/<generated-name>") it was stored at.
	Save(ctx context.Context, file *multipart.FileHeader, categoria string) (string, error)
	// Resolve turns a caller-supplied relative path into an absolute path,
	// guaranteed to stay inside the media root. It fails with the same error
	// for a path that escapes the root and for a file that does not exist.
	Resolve(relPath string) (string, error)
	// Root returns the absolute media root.
	Root() string
}

package dto

import (
	"mime/multipart"

	"sntsa.mx/becas/internal/model"
)

// SolicitudComunInput carries the fields shared by the three application
// forms.
type SolicitudComunInput struct {
	BecarioID string `form:"becario_id" binding:"required,uuid"`

	ReciboNomina *multipart.FileHeader `form:"recibo_nomina" binding:"required"`
	INE          *multipart.FileHeader `form:"ine" binding:"required"`
}

type CrearAprovechamientoInput struct {
	SolicitudComunInput

	GradoID  uint    `form:"grado_id" binding:"required"`
	Promedio float64 `form:"promedio" binding:"required,gte=6,lte=10"`

	Boleta *multipart.FileHeader `form:"boleta" binding:"required"`
}

type CrearExcelenciaInput struct {
	SolicitudComunInput

	GradoID  uint    `form:"grado_id" binding:"required"`
	Promedio float64 `form:"promedio" binding:"required,gte=6,lte=10"`
	Carrera  string  `form:"carrera" binding:"required,max=128"`

	Boleta *multipart.FileHeader `form:"boleta" binding:"required"`
}

type CrearEspecialInput struct {
	SolicitudComunInput

	DiagnosticoMedico string `form:"diagnostico_medico" binding:"required,max=128"`
	TipoEducacion     string `form:"tipo_educacion" binding:"required,max=128"`

	CertificadoMedico  *multipart.FileHeader `form:"certificado_medico" binding:"required"`
	CertificadoEscolar *multipart.FileHeader `form:"certificado_escolar" binding:"required"`
}

// SolicitudesResponse partitions a caller's applications by category for
// display.
type SolicitudesResponse struct {
	Aprovechamiento []model.SolicitudAprovechamiento `json:"aprovechamiento"`
	Excelencia      []model.SolicitudExcelencia      `json:"excelencia"`
	Especial        []model.SolicitudEspecial        `json:"especial"`
}

// SolicitudesCategoria is the staff review listing for one category; only
// the slice matching Categoria is populated.
type SolicitudesCategoria struct {
	Categoria       model.Categoria                  `json:"categoria"`
	Aprovechamiento []model.SolicitudAprovechamiento `json:"aprovechamiento,omitempty"`
	Excelencia      []model.SolicitudExcelencia      `json:"excelencia,omitempty"`
	Especial        []model.SolicitudEspecial        `json:"especial,omitempty"`
}

type ActualizarEstadoInput struct {
	Estado string  `json:"estado" binding:"required"`
	Notas  *string `json:"notas"`
}

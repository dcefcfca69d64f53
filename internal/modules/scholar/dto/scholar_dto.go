package dto

import (
	"mime/multipart"

	"sntsa.mx/becas/internal/model"
)

type CrearBecarioInput struct {
	Nombre          string  `form:"nombre" binding:"required,max=128"`
	ApellidoPaterno string  `form:"apellido_paterno" binding:"required,max=128"`
	ApellidoMaterno *string `form:"apellido_materno" binding:"omitempty,max=128"`
	CURP            string  `form:"curp" binding:"required"`

	CURPArchivo    *multipart.FileHeader `form:"curp_archivo" binding:"required"`
	ActaNacimiento *multipart.FileHeader `form:"acta_nacimiento" binding:"required"`
}

type EditarBecarioInput struct {
	Nombre          string  `form:"nombre" binding:"required,max=128"`
	ApellidoPaterno string  `form:"apellido_paterno" binding:"required,max=128"`
	ApellidoMaterno *string `form:"apellido_materno" binding:"omitempty,max=128"`
	CURP            string  `form:"curp" binding:"required"`

	CURPArchivo    *multipart.FileHeader `form:"curp_archivo"`
	ActaNacimiento *multipart.FileHeader `form:"acta_nacimiento"`
}

// BecarioResponse adds the two facts derived from the CURP.
type BecarioResponse struct {
	model.Becario
	Sexo            string `json:"sexo"`
	FechaNacimiento string `json:"fecha_nacimiento"`
}

func NewBecarioResponse(becario model.Becario) BecarioResponse {
	return BecarioResponse{
		Becario:         becario,
		Sexo:            becario.Sexo(),
		FechaNacimiento: becario.FechaNacimiento(),
	}
}

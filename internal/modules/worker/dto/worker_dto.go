package dto

import "mime/multipart"

type CrearTrabajadorInput struct {
	Nombre          string  `form:"nombre" binding:"required,max=128"`
	ApellidoPaterno string  `form:"apellido_paterno" binding:"required,max=128"`
	ApellidoMaterno *string `form:"apellido_materno" binding:"omitempty,max=128"`

	Telefono string `form:"telefono" binding:"required,phone_mx"`
	Correo   string `form:"correo" binding:"required,email"`

	SeccionID          uint `form:"seccion_id" binding:"required"`
	PuestoID           uint `form:"puesto_id" binding:"required"`
	JurisdiccionID     uint `form:"jurisdiccion_id" binding:"required"`
	LugarAdscripcionID uint `form:"lugar_adscripcion_id" binding:"required"`

	CURPArchivo *multipart.FileHeader `form:"curp_archivo" binding:"required"`
}

// EditarTrabajadorInput covers the only three fields that stay mutable after
// the profile is created.
type EditarTrabajadorInput struct {
	Telefono string `form:"telefono" binding:"required,phone_mx"`
	Correo   string `form:"correo" binding:"required,email"`

	CURPArchivo *multipart.FileHeader `form:"curp_archivo"`
}

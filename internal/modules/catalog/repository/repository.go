package repository

import (
	"context"

	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
)

type CatalogoRepository interface {
	ListSecciones(ctx context.Context) ([]model.Seccion, error)
	ListPuestos(ctx context.Context) ([]model.Puesto, error)
	ListJurisdicciones(ctx context.Context) ([]model.Jurisdiccion, error)
	ListLugaresAdscripcion(ctx context.Context) ([]model.LugarAdscripcion, error)
	ListGrados(ctx context.Context) ([]model.Grado, error)
	GradoExists(ctx context.Context, id uint) (bool, error)
}

type catalogoRepository struct {
	db *gorm.DB
}

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository {
	return &catalogoRepository{db: db}
}

func (r *catalogoRepository) ListSecciones(ctx context.Context) ([]model.Seccion, error) {
	var secciones []model.Seccion
	err := r.db.WithContext(ctx).Order("numero").Find(&secciones).Error
	return secciones, err
}

func (r *catalogoRepository) ListPuestos(ctx context.Context) ([]model.Puesto, error) {
	var puestos []model.Puesto
	err := r.db.WithContext(ctx).Order("clave").Find(&puestos).Error
	return puestos, err
}

func (r *catalogoRepository) ListJurisdicciones(ctx context.Context) ([]model.Jurisdiccion, error) {
	var jurisdicciones []model.Jurisdiccion
	err := r.db.WithContext(ctx).Order("clave").Find(&jurisdicciones).Error
	return jurisdicciones, err
}

func (r *catalogoRepository) ListLugaresAdscripcion(ctx context.Context) ([]model.LugarAdscripcion, error) {
	var lugares []model.LugarAdscripcion
	err := r.db.WithContext(ctx).Order("nombre").Find(&lugares).Error
	return lugares, err
}

func (r *catalogoRepository) ListGrados(ctx context.Context) ([]model.Grado, error) {
	var grados []model.Grado
	err := r.db.WithContext(ctx).Order("clave").Find(&grados).Error
	return grados, err
}

func (r *catalogoRepository) GradoExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Grado{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

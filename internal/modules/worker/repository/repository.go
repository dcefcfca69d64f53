package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
)

type TrabajadorRepository interface {
	Create(ctx context.Context, trabajador *model.Trabajador) error
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Trabajador, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Trabajador, error)
	Update(ctx context.Context, trabajador *model.Trabajador) error
	List(ctx context.Context, aprobado *bool) ([]model.Trabajador, error)
	SetAprobado(ctx context.Context, id uuid.UUID, aprobado bool) error
}

type trabajadorRepository struct {
	db *gorm.DB
}

func NewTrabajadorRepository(db *gorm.DB) TrabajadorRepository {
	return &trabajadorRepository{db: db}
}

func (r *trabajadorRepository) Create(ctx context.Context, trabajador *model.Trabajador) error {
	return r.db.WithContext(ctx).Create(trabajador).Error
}

func (r *trabajadorRepository) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Trabajador, error) {
	var trabajador model.Trabajador
	err := r.db.WithContext(ctx).
		Preload("Seccion").Preload("Puesto").Preload("Jurisdiccion").Preload("LugarAdscripcion").
		Where("usuario_id = ?", usuarioID).
		First(&trabajador).Error
	if err != nil {
		return nil, err
	}
	return &trabajador, nil
}

func (r *trabajadorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Trabajador, error) {
	var trabajador model.Trabajador
	err := r.db.WithContext(ctx).
		Preload("Seccion").Preload("Puesto").Preload("Jurisdiccion").Preload("LugarAdscripcion").
		Where("id = ?", id).
		First(&trabajador).Error
	if err != nil {
		return nil, err
	}
	return &trabajador, nil
}

func (r *trabajadorRepository) Update(ctx context.Context, trabajador *model.Trabajador) error {
	return r.db.WithContext(ctx).Save(trabajador).Error
}

func (r *trabajadorRepository) List(ctx context.Context, aprobado *bool) ([]model.Trabajador, error) {
	var trabajadores []model.Trabajador
	query := r.db.WithContext(ctx).
		Preload("Seccion").Preload("Puesto").Preload("Jurisdiccion").Preload("LugarAdscripcion").
		Order("created_at")
	if aprobado != nil {
		query = query.Where("aprobado = ?", *aprobado)
	}
	err := query.Find(&trabajadores).Error
	return trabajadores, err
}

func (r *trabajadorRepository) SetAprobado(ctx context.Context, id uuid.UUID, aprobado bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Trabajador{}).
		Where("id = ?", id).
		Update("aprobado", aprobado)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

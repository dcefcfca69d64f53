package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
)

type SolicitudRepository interface {
	CreateAprovechamiento(ctx context.Context, solicitud *model.SolicitudAprovechamiento) error
	CreateExcelencia(ctx context.Context, solicitud *model.SolicitudExcelencia) error
	CreateEspecial(ctx context.Context, solicitud *model.SolicitudEspecial) error

	// ExistsEnCurso reports whether the scholar already holds an in-flight
	// ({R,P}) application in the given category.
	ExistsEnCurso(ctx context.Context, categoria model.Categoria, becarioID uuid.UUID) (bool, error)
	// ExistsActiva reports whether any application in any category for the
	// scholar is in {R,P,T}; such a scholar cannot be edited.
	ExistsActiva(ctx context.Context, becarioID uuid.UUID) (bool, error)

	ListAprovechamientoByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudAprovechamiento, error)
	ListExcelenciaByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudExcelencia, error)
	ListEspecialByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudEspecial, error)

	ListAprovechamiento(ctx context.Context, estado *model.Estado) ([]model.SolicitudAprovechamiento, error)
	ListExcelencia(ctx context.Context, estado *model.Estado) ([]model.SolicitudExcelencia, error)
	ListEspecial(ctx context.Context, estado *model.Estado) ([]model.SolicitudEspecial, error)

	UpdateEstado(ctx context.Context, categoria model.Categoria, id uuid.UUID, estado model.Estado, notas *string) error
}

type solicitudRepository struct {
	db *gorm.DB
}

func NewSolicitudRepository(db *gorm.DB) SolicitudRepository {
	return &solicitudRepository{db: db}
}

func (r *solicitudRepository) CreateAprovechamiento(ctx context.Context, solicitud *model.SolicitudAprovechamiento) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

func (r *solicitudRepository) CreateExcelencia(ctx context.Context, solicitud *model.SolicitudExcelencia) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

func (r *solicitudRepository) CreateEspecial(ctx context.Context, solicitud *model.SolicitudEspecial) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

// categoriaModel maps a category onto the struct GORM resolves the table from.
func categoriaModel(categoria model.Categoria) (interface{}, error) {
	switch categoria {
	case model.CategoriaAprovechamiento:
		return &model.SolicitudAprovechamiento{}, nil
	case model.CategoriaExcelencia:
		return &model.SolicitudExcelencia{}, nil
	case model.CategoriaEspecial:
		return &model.SolicitudEspecial{}, nil
	}
	return nil, fmt.Errorf("categoría desconocida: %s", categoria)
}

func (r *solicitudRepository) ExistsEnCurso(ctx context.Context, categoria model.Categoria, becarioID uuid.UUID) (bool, error) {
	target, err := categoriaModel(categoria)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(target).
		Where("becario_id = ? AND estado IN ?", becarioID, model.EstadosEnCurso).
		Count(&count).Error
	return count > 0, err
}

func (r *solicitudRepository) ExistsActiva(ctx context.Context, becarioID uuid.UUID) (bool, error) {
	for _, categoria := range model.Categorias {
		target, err := categoriaModel(categoria)
		if err != nil {
			return false, err
		}

		var count int64
		err = r.db.WithContext(ctx).Model(target).
			Where("becario_id = ? AND estado IN ?", becarioID, model.EstadosActivos).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *solicitudRepository) ownedBecarios(usuarioID uuid.UUID) *gorm.DB {
	return r.db.Model(&model.Becario{}).Select("id").Where("usuario_id = ?", usuarioID)
}

func (r *solicitudRepository) ListAprovechamientoByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudAprovechamiento, error) {
	var solicitudes []model.SolicitudAprovechamiento
	err := r.db.WithContext(ctx).
		Preload("Becario").Preload("Grado").
		Where("becario_id IN (?)", r.ownedBecarios(usuarioID)).
		Order("fecha_solicitud DESC").
		Find(&solicitudes).Error
	return solicitudes, err
}

func (r *solicitudRepository) ListExcelenciaByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudExcelencia, error) {
	var solicitudes []model.SolicitudExcelencia
	err := r.db.WithContext(ctx).
		Preload("Becario").Preload("Grado").
		Where("becario_id IN (?)", r.ownedBecarios(usuarioID)).
		Order("fecha_solicitud DESC").
		Find(&solicitudes).Error
	return solicitudes, err
}

func (r *solicitudRepository) ListEspecialByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudEspecial, error) {
	var solicitudes []model.SolicitudEspecial
	err := r.db.WithContext(ctx).
		Preload("Becario").
		Where("becario_id IN (?)", r.ownedBecarios(usuarioID)).
		Order("fecha_solicitud DESC").
		Find(&solicitudes).Error
	return solicitudes, err
}

func (r *solicitudRepository) ListAprovechamiento(ctx context.Context, estado *model.Estado) ([]model.SolicitudAprovechamiento, error) {
	var solicitudes []model.SolicitudAprovechamiento
	query := r.db.WithContext(ctx).Preload("Becario").Preload("Grado").Order("fecha_solicitud")
	if estado != nil {
		query = query.Where("estado = ?", *estado)
	}
	err := query.Find(&solicitudes).Error
	return solicitudes, err
}

func (r *solicitudRepository) ListExcelencia(ctx context.Context, estado *model.Estado) ([]model.SolicitudExcelencia, error) {
	var solicitudes []model.SolicitudExcelencia
	query := r.db.WithContext(ctx).Preload("Becario").Preload("Grado").Order("fecha_solicitud")
	if estado != nil {
		query = query.Where("estado = ?", *estado)
	}
	err := query.Find(&solicitudes).Error
	return solicitudes, err
}

func (r *solicitudRepository) ListEspecial(ctx context.Context, estado *model.Estado) ([]model.SolicitudEspecial, error) {
	var solicitudes []model.SolicitudEspecial
	query := r.db.WithContext(ctx).Preload("Becario").Order("fecha_solicitud")
	if estado != nil {
		query = query.Where("estado = ?", *estado)
	}
	err := query.Find(&solicitudes).Error
	return solicitudes, err
}

func (r *solicitudRepository) UpdateEstado(ctx context.Context, categoria model.Categoria, id uuid.UUID, estado model.Estado, notas *string) error {
	target, err := categoriaModel(categoria)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"estado": estado}
	if notas != nil {
		updates["notas"] = *notas
	}

	result := r.db.WithContext(ctx).Model(target).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

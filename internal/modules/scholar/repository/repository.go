package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
)

type BecarioRepository interface {
	Create(ctx context.Context, becario *model.Becario) error
	// FindOwned fetches a scholar only if it belongs to the given account.
	FindOwned(ctx context.Context, id, usuarioID uuid.UUID) (*model.Becario, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Becario, error)
	Update(ctx context.Context, becario *model.Becario) error
}

type becarioRepository struct {
	db *gorm.DB
}

func NewBecarioRepository(db *gorm.DB) BecarioRepository {
	return &becarioRepository{db: db}
}

func (r *becarioRepository) Create(ctx context.Context, becario *model.Becario) error {
	return r.db.WithContext(ctx).Create(becario).Error
}

func (r *becarioRepository) FindOwned(ctx context.Context, id, usuarioID uuid.UUID) (*model.Becario, error) {
	var becario model.Becario
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&becario).Error
	if err != nil {
		return nil, err
	}
	return &becario, nil
}

func (r *becarioRepository) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Becario, error) {
	var becarios []model.Becario
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at").
		Find(&becarios).Error
	return becarios, err
}

func (r *becarioRepository) Update(ctx context.Context, becario *model.Becario) error {
	return r.db.WithContext(ctx).Save(becario).Error
}

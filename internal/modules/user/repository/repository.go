package repository

import (
	"context"

	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	FindByCURP(ctx context.Context, curp string) (*model.Usuario, error)
	FindByID(ctx context.Context, id string) (*model.Usuario, error)
}

type usuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepository) FindByCURP(ctx context.Context, curp string) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).Where("curp = ?", curp).First(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepository) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

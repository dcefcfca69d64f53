package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/worker/dto"
	"sntsa.mx/becas/internal/modules/worker/repository"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/storage"
)

type TrabajadorService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, input dto.CrearTrabajadorInput) (*model.Trabajador, error)
	GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Trabajador, error)
	Editar(ctx context.Context, usuarioID uuid.UUID, input dto.EditarTrabajadorInput) (*model.Trabajador, error)
	List(ctx context.Context, aprobado *bool) ([]model.Trabajador, error)
	Aprobar(ctx context.Context, id uuid.UUID, aprobado bool) error
}

type trabajadorService struct {
	repo    repository.TrabajadorRepository
	storage storage.DocumentStorage
}

func NewTrabajadorService(repo repository.TrabajadorRepository, documentStorage storage.DocumentStorage) TrabajadorService {
	return &trabajadorService{
		repo:    repo,
		storage: documentStorage,
	}
}

func (s *trabajadorService) Crear(ctx context.Context, usuarioID uuid.UUID, input dto.CrearTrabajadorInput) (*model.Trabajador, error) {
	curpArchivo, err := s.storage.Save(ctx, input.CURPArchivo, storage.CategoriaCURP)
	if err != nil {
		return nil, err
	}

	trabajador := &model.Trabajador{
		UsuarioID:          usuarioID,
		Nombre:             input.Nombre,
		ApellidoPaterno:    input.ApellidoPaterno,
		ApellidoMaterno:    input.ApellidoMaterno,
		CURPArchivo:        curpArchivo,
		Telefono:           input.Telefono,
		Correo:             input.Correo,
		SeccionID:          input.SeccionID,
		PuestoID:           input.PuestoID,
		JurisdiccionID:     input.JurisdiccionID,
		LugarAdscripcionID: input.LugarAdscripcionID,
	}

	if err := s.repo.Create(ctx, trabajador); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrDuplicate, "El trabajador ya existe")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.Wrap(apperror.ErrInvalidInput, "Datos de adscripción inválidos")
		}
		return nil, err
	}

	return trabajador, nil
}

func (s *trabajadorService) GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Trabajador, error) {
	trabajador, err := s.repo.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return trabajador, nil
}

// Editar mutates the three post-creation mutable fields; everything else on
// the profile is immutable once set.
func (s *trabajadorService) Editar(ctx context.Context, usuarioID uuid.UUID, input dto.EditarTrabajadorInput) (*model.Trabajador, error) {
	trabajador, err := s.GetByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	trabajador.Telefono = input.Telefono
	trabajador.Correo = input.Correo

	if input.CURPArchivo != nil {
		curpArchivo, err := s.storage.Save(ctx, input.CURPArchivo, storage.CategoriaCURP)
		if err != nil {
			return nil, err
		}
		trabajador.CURPArchivo = curpArchivo
	}

	if err := s.repo.Update(ctx, trabajador); err != nil {
		return nil, err
	}

	return trabajador, nil
}

func (s *trabajadorService) List(ctx context.Context, aprobado *bool) ([]model.Trabajador, error) {
	return s.repo.List(ctx, aprobado)
}

func (s *trabajadorService) Aprobar(ctx context.Context, id uuid.UUID, aprobado bool) error {
	if err := s.repo.SetAprobado(ctx, id, aprobado); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return nil
}

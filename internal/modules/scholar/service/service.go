package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	applicationRepo "sntsa.mx/becas/internal/modules/application/repository"
	"sntsa.mx/becas/internal/modules/scholar/dto"
	"sntsa.mx/becas/internal/modules/scholar/repository"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/storage"
	"sntsa.mx/becas/pkg/validator"
)

type BecarioService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, input dto.CrearBecarioInput) (*dto.BecarioResponse, error)
	List(ctx context.Context, usuarioID uuid.UUID) ([]dto.BecarioResponse, error)
	// Get resolves a scholar for the edit form, applying the same edit-block
	// policy as Editar.
	Get(ctx context.Context, usuarioID, becarioID uuid.UUID) (*dto.BecarioResponse, error)
	Editar(ctx context.Context, usuarioID, becarioID uuid.UUID, input dto.EditarBecarioInput) (*dto.BecarioResponse, error)
}

type becarioService struct {
	repo          repository.BecarioRepository
	solicitudRepo applicationRepo.SolicitudRepository
	storage       storage.DocumentStorage
}

func NewBecarioService(repo repository.BecarioRepository, solicitudRepo applicationRepo.SolicitudRepository, documentStorage storage.DocumentStorage) BecarioService {
	return &becarioService{
		repo:          repo,
		solicitudRepo: solicitudRepo,
		storage:       documentStorage,
	}
}

func (s *becarioService) Crear(ctx context.Context, usuarioID uuid.UUID, input dto.CrearBecarioInput) (*dto.BecarioResponse, error) {
	if !validator.CURPPattern.MatchString(input.CURP) {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "Formato de CURP inválido")
	}

	curpArchivo, err := s.storage.Save(ctx, input.CURPArchivo, storage.CategoriaCURP)
	if err != nil {
		return nil, err
	}

	actaNacimiento, err := s.storage.Save(ctx, input.ActaNacimiento, storage.CategoriaActaNacimiento)
	if err != nil {
		return nil, err
	}

	becario := &model.Becario{
		UsuarioID:       usuarioID,
		Nombre:          input.Nombre,
		ApellidoPaterno: input.ApellidoPaterno,
		ApellidoMaterno: input.ApellidoMaterno,
		CURP:            input.CURP,
		CURPArchivo:     curpArchivo,
		ActaNacimiento:  actaNacimiento,
	}

	if err := s.repo.Create(ctx, becario); err != nil {
		return nil, err
	}

	resp := dto.NewBecarioResponse(*becario)
	return &resp, nil
}

func (s *becarioService) List(ctx context.Context, usuarioID uuid.UUID) ([]dto.BecarioResponse, error) {
	becarios, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BecarioResponse, 0, len(becarios))
	for _, becario := range becarios {
		responses = append(responses, dto.NewBecarioResponse(becario))
	}
	return responses, nil
}

func (s *becarioService) Get(ctx context.Context, usuarioID, becarioID uuid.UUID) (*dto.BecarioResponse, error) {
	becario, err := s.editable(ctx, usuarioID, becarioID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewBecarioResponse(*becario)
	return &resp, nil
}

func (s *becarioService) Editar(ctx context.Context, usuarioID, becarioID uuid.UUID, input dto.EditarBecarioInput) (*dto.BecarioResponse, error) {
	becario, err := s.editable(ctx, usuarioID, becarioID)
	if err != nil {
		return nil, err
	}

	if !validator.CURPPattern.MatchString(input.CURP) {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "Formato de CURP inválido")
	}

	becario.Nombre = input.Nombre
	becario.ApellidoPaterno = input.ApellidoPaterno
	becario.ApellidoMaterno = input.ApellidoMaterno
	becario.CURP = input.CURP

	if input.CURPArchivo != nil {
		curpArchivo, err := s.storage.Save(ctx, input.CURPArchivo, storage.CategoriaCURP)
		if err != nil {
			return nil, err
		}
		becario.CURPArchivo = curpArchivo
	}

	if input.ActaNacimiento != nil {
		actaNacimiento, err := s.storage.Save(ctx, input.ActaNacimiento, storage.CategoriaActaNacimiento)
		if err != nil {
			return nil, err
		}
		becario.ActaNacimiento = actaNacimiento
	}

	if err := s.repo.Update(ctx, becario); err != nil {
		return nil, err
	}

	resp := dto.NewBecarioResponse(*becario)
	return &resp, nil
}

// editable fetches an owned scholar and rejects the operation while any
// application for it is in flight or already granted: the biographical data
// behind a live application must not change.
func (s *becarioService) editable(ctx context.Context, usuarioID, becarioID uuid.UUID) (*model.Becario, error) {
	becario, err := s.repo.FindOwned(ctx, becarioID, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	activa, err := s.solicitudRepo.ExistsActiva(ctx, becario.ID)
	if err != nil {
		return nil, err
	}
	if activa {
		return nil, apperror.Wrap(apperror.ErrPolicy,
			"Este becario tiene una solicitud en curso o aprobada. No se puede editar.")
	}

	return becario, nil
}

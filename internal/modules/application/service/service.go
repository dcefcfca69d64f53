package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/application/dto"
	"sntsa.mx/becas/internal/modules/application/repository"
	catalogRepo "sntsa.mx/becas/internal/modules/catalog/repository"
	scholarRepo "sntsa.mx/becas/internal/modules/scholar/repository"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/storage"
)

const mensajeDuplicada = "El becario ya tiene una solicitud pendiente en esta categoría"

type SolicitudService interface {
	CrearAprovechamiento(ctx context.Context, usuarioID uuid.UUID, input dto.CrearAprovechamientoInput) (*model.SolicitudAprovechamiento, error)
	CrearExcelencia(ctx context.Context, usuarioID uuid.UUID, input dto.CrearExcelenciaInput) (*model.SolicitudExcelencia, error)
	CrearEspecial(ctx context.Context, usuarioID uuid.UUID, input dto.CrearEspecialInput) (*model.SolicitudEspecial, error)

	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) (*dto.SolicitudesResponse, error)
	ListByCategoria(ctx context.Context, categoria model.Categoria, estado *model.Estado) (*dto.SolicitudesCategoria, error)
	ActualizarEstado(ctx context.Context, categoria model.Categoria, id uuid.UUID, input dto.ActualizarEstadoInput) error
}

type solicitudService struct {
	repo        repository.SolicitudRepository
	becarioRepo scholarRepo.BecarioRepository
	catalogos   catalogRepo.CatalogoRepository
	storage     storage.DocumentStorage
	sanitizer   *bluemonday.Policy
}

func NewSolicitudService(repo repository.SolicitudRepository, becarioRepo scholarRepo.BecarioRepository, catalogos catalogRepo.CatalogoRepository, documentStorage storage.DocumentStorage) SolicitudService {
	return &solicitudService{
		repo:        repo,
		becarioRepo: becarioRepo,
		catalogos:   catalogos,
		storage:     documentStorage,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func errDuplicada() error {
	return apperror.Wrap(apperror.ErrDuplicate, mensajeDuplicada)
}

// prepararBase runs the creation protocol shared by the three variants:
// ownership check, in-flight pre-check, document upload, and the initial
// estado R with submission date now. The pre-check gives the caller a
// specific duplicate message; the partial unique index behind Create settles
// the race when two submissions pass the pre-check concurrently.
func (s *solicitudService) prepararBase(ctx context.Context, usuarioID uuid.UUID, categoria model.Categoria, becarioIDRaw string, recibo, ine *multipart.FileHeader) (model.SolicitudBase, error) {
	becarioID, err := uuid.Parse(becarioIDRaw)
	if err != nil {
		return model.SolicitudBase{}, apperror.ErrNotFound
	}

	becario, err := s.becarioRepo.FindOwned(ctx, becarioID, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.SolicitudBase{}, apperror.ErrNotFound
		}
		return model.SolicitudBase{}, err
	}

	enCurso, err := s.repo.ExistsEnCurso(ctx, categoria, becario.ID)
	if err != nil {
		return model.SolicitudBase{}, err
	}
	if enCurso {
		return model.SolicitudBase{}, errDuplicada()
	}

	reciboPath, err := s.storage.Save(ctx, recibo, storage.CategoriaReciboNomina)
	if err != nil {
		return model.SolicitudBase{}, err
	}

	inePath, err := s.storage.Save(ctx, ine, storage.CategoriaINE)
	if err != nil {
		return model.SolicitudBase{}, err
	}

	return model.SolicitudBase{
		BecarioID:      becario.ID,
		FechaSolicitud: time.Now(),
		ReciboNomina:   reciboPath,
		INE:            inePath,
		Estado:         model.EstadoRecibida,
	}, nil
}

// translateCreate maps the storage-level constraint violation onto the same
// duplicate message the pre-check produces.
func translateCreate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errDuplicada()
	}
	return err
}

func validPromedio(promedio float64) error {
	if promedio < 6.0 || promedio > 10.0 {
		return apperror.Wrap(apperror.ErrInvalidInput, "El promedio debe estar entre 6.0 y 10.0")
	}
	return nil
}

// validGrado rejects a grade id that is not in the catalog before the insert
// would trip the foreign key.
func (s *solicitudService) validGrado(ctx context.Context, gradoID uint) error {
	ok, err := s.catalogos.GradoExists(ctx, gradoID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Wrap(apperror.ErrInvalidInput, "Grado inválido")
	}
	return nil
}

func (s *solicitudService) CrearAprovechamiento(ctx context.Context, usuarioID uuid.UUID, input dto.CrearAprovechamientoInput) (*model.SolicitudAprovechamiento, error) {
	if err := validPromedio(input.Promedio); err != nil {
		return nil, err
	}
	if err := s.validGrado(ctx, input.GradoID); err != nil {
		return nil, err
	}

	base, err := s.prepararBase(ctx, usuarioID, model.CategoriaAprovechamiento, input.BecarioID, input.ReciboNomina, input.INE)
	if err != nil {
		return nil, err
	}

	boleta, err := s.storage.Save(ctx, input.Boleta, storage.CategoriaBoleta)
	if err != nil {
		return nil, err
	}

	solicitud := &model.SolicitudAprovechamiento{
		SolicitudBase: base,
		GradoID:       input.GradoID,
		Promedio:      input.Promedio,
		Boleta:        boleta,
	}

	if err := translateCreate(s.repo.CreateAprovechamiento(ctx, solicitud)); err != nil {
		return nil, err
	}

	return solicitud, nil
}

func (s *solicitudService) CrearExcelencia(ctx context.Context, usuarioID uuid.UUID, input dto.CrearExcelenciaInput) (*model.SolicitudExcelencia, error) {
	if err := validPromedio(input.Promedio); err != nil {
		return nil, err
	}
	if err := s.validGrado(ctx, input.GradoID); err != nil {
		return nil, err
	}

	base, err := s.prepararBase(ctx, usuarioID, model.CategoriaExcelencia, input.BecarioID, input.ReciboNomina, input.INE)
	if err != nil {
		return nil, err
	}

	boleta, err := s.storage.Save(ctx, input.Boleta, storage.CategoriaBoleta)
	if err != nil {
		return nil, err
	}

	solicitud := &model.SolicitudExcelencia{
		SolicitudBase: base,
		GradoID:       input.GradoID,
		Promedio:      input.Promedio,
		Boleta:        boleta,
		Carrera:       s.sanitizer.Sanitize(input.Carrera),
	}

	if err := translateCreate(s.repo.CreateExcelencia(ctx, solicitud)); err != nil {
		return nil, err
	}

	return solicitud, nil
}

func (s *solicitudService) CrearEspecial(ctx context.Context, usuarioID uuid.UUID, input dto.CrearEspecialInput) (*model.SolicitudEspecial, error) {
	base, err := s.prepararBase(ctx, usuarioID, model.CategoriaEspecial, input.BecarioID, input.ReciboNomina, input.INE)
	if err != nil {
		return nil, err
	}

	certificadoMedico, err := s.storage.Save(ctx, input.CertificadoMedico, storage.CategoriaCertificadoMedico)
	if err != nil {
		return nil, err
	}

	certificadoEscolar, err := s.storage.Save(ctx, input.CertificadoEscolar, storage.CategoriaCertificadoEscolar)
	if err != nil {
		return nil, err
	}

	solicitud := &model.SolicitudEspecial{
		SolicitudBase:      base,
		DiagnosticoMedico:  s.sanitizer.Sanitize(input.DiagnosticoMedico),
		TipoEducacion:      s.sanitizer.Sanitize(input.TipoEducacion),
		CertificadoMedico:  certificadoMedico,
		CertificadoEscolar: certificadoEscolar,
	}

	if err := translateCreate(s.repo.CreateEspecial(ctx, solicitud)); err != nil {
		return nil, err
	}

	return solicitud, nil
}

func (s *solicitudService) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) (*dto.SolicitudesResponse, error) {
	aprovechamiento, err := s.repo.ListAprovechamientoByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	excelencia, err := s.repo.ListExcelenciaByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	especial, err := s.repo.ListEspecialByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	return &dto.SolicitudesResponse{
		Aprovechamiento: aprovechamiento,
		Excelencia:      excelencia,
		Especial:        especial,
	}, nil
}

func (s *solicitudService) ListByCategoria(ctx context.Context, categoria model.Categoria, estado *model.Estado) (*dto.SolicitudesCategoria, error) {
	resp := &dto.SolicitudesCategoria{Categoria: categoria}

	var err error
	switch categoria {
	case model.CategoriaAprovechamiento:
		resp.Aprovechamiento, err = s.repo.ListAprovechamiento(ctx, estado)
	case model.CategoriaExcelencia:
		resp.Excelencia, err = s.repo.ListExcelencia(ctx, estado)
	case model.CategoriaEspecial:
		resp.Especial, err = s.repo.ListEspecial(ctx, estado)
	default:
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *solicitudService) ActualizarEstado(ctx context.Context, categoria model.Categoria, id uuid.UUID, input dto.ActualizarEstadoInput) error {
	estado := model.Estado(input.Estado)
	if !estado.Valid() {
		return apperror.Wrap(apperror.ErrInvalidInput, "Estado inválido")
	}

	var notas *string
	if input.Notas != nil {
		clean := s.sanitizer.Sanitize(*input.Notas)
		notas = &clean
	}

	err := s.repo.UpdateEstado(ctx, categoria, id, estado, notas)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		// Moving an application back into the in-flight set can trip the
		// partial unique index when another one is already in flight.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errDuplicada()
		}
		return err
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/application/dto"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/storage"
)

type stubSolicitudRepo struct {
	enCurso   map[model.Categoria]bool
	createErr error

	creadas         []interface{}
	aprovechamiento []model.SolicitudAprovechamiento

	estadoActualizado *model.Estado
	updateErr         error
}

func newStubSolicitudRepo() *stubSolicitudRepo {
	return &stubSolicitudRepo{enCurso: make(map[model.Categoria]bool)}
}

func (s *stubSolicitudRepo) CreateAprovechamiento(ctx context.Context, solicitud *model.SolicitudAprovechamiento) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.creadas = append(s.creadas, solicitud)
	return nil
}

func (s *stubSolicitudRepo) CreateExcelencia(ctx context.Context, solicitud *model.SolicitudExcelencia) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.creadas = append(s.creadas, solicitud)
	return nil
}

func (s *stubSolicitudRepo) CreateEspecial(ctx context.Context, solicitud *model.SolicitudEspecial) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.creadas = append(s.creadas, solicitud)
	return nil
}

func (s *stubSolicitudRepo) ExistsEnCurso(ctx context.Context, categoria model.Categoria, becarioID uuid.UUID) (bool, error) {
	return s.enCurso[categoria], nil
}

func (s *stubSolicitudRepo) ExistsActiva(ctx context.Context, becarioID uuid.UUID) (bool, error) {
	for _, enCurso := range s.enCurso {
		if enCurso {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubSolicitudRepo) ListAprovechamientoByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudAprovechamiento, error) {
	return nil, nil
}

func (s *stubSolicitudRepo) ListExcelenciaByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudExcelencia, error) {
	return nil, nil
}

func (s *stubSolicitudRepo) ListEspecialByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudEspecial, error) {
	return nil, nil
}

func (s *stubSolicitudRepo) ListAprovechamiento(ctx context.Context, estado *model.Estado) ([]model.SolicitudAprovechamiento, error) {
	return s.aprovechamiento, nil
}

func (s *stubSolicitudRepo) ListExcelencia(ctx context.Context, estado *model.Estado) ([]model.SolicitudExcelencia, error) {
	return nil, nil
}

func (s *stubSolicitudRepo) ListEspecial(ctx context.Context, estado *model.Estado) ([]model.SolicitudEspecial, error) {
	return nil, nil
}

func (s *stubSolicitudRepo) UpdateEstado(ctx context.Context, categoria model.Categoria, id uuid.UUID, estado model.Estado, notas *string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.estadoActualizado = &estado
	return nil
}

type stubBecarioRepo struct {
	becario *model.Becario
}

func (s *stubBecarioRepo) Create(ctx context.Context, becario *model.Becario) error { return nil }

func (s *stubBecarioRepo) FindOwned(ctx context.Context, id, usuarioID uuid.UUID) (*model.Becario, error) {
	if s.becario == nil || s.becario.ID != id || s.becario.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *s.becario
	return &copia, nil
}

func (s *stubBecarioRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Becario, error) {
	return nil, nil
}

func (s *stubBecarioRepo) Update(ctx context.Context, becario *model.Becario) error { return nil }

// stubCatalogos answers grade lookups from a fixed id set.
type stubCatalogos struct {
	grados map[uint]bool
}

func (s *stubCatalogos) ListSecciones(ctx context.Context) ([]model.Seccion, error) {
	return nil, nil
}

func (s *stubCatalogos) ListPuestos(ctx context.Context) ([]model.Puesto, error) {
	return nil, nil
}

func (s *stubCatalogos) ListJurisdicciones(ctx context.Context) ([]model.Jurisdiccion, error) {
	return nil, nil
}

func (s *stubCatalogos) ListLugaresAdscripcion(ctx context.Context) ([]model.LugarAdscripcion, error) {
	return nil, nil
}

func (s *stubCatalogos) ListGrados(ctx context.Context) ([]model.Grado, error) {
	return nil, nil
}

func (s *stubCatalogos) GradoExists(ctx context.Context, id uint) (bool, error) {
	return s.grados[id], nil
}

// stubStorage hands out deterministic paths without touching the filesystem.
type stubStorage struct {
	saves int
}

func (s *stubStorage) Save(ctx context.Context, file *multipart.FileHeader, categoria string) (string, error) {
	s.saves++
	return fmt.Sprintf("%s/doc-%d.pdf", categoria, s.saves), nil
}

func (s *stubStorage) Resolve(relPath string) (string, error) {
	return "", storage.ErrNotAvailable
}

func (s *stubStorage) Root() string { return "" }

func archivo(nombre string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: nombre}
}

type fixture struct {
	svc       SolicitudService
	repo      *stubSolicitudRepo
	usuarioID uuid.UUID
	becarioID uuid.UUID
}

func newFixture() fixture {
	usuarioID := uuid.New()
	becario := &model.Becario{
		ID:        uuid.New(),
		UsuarioID: usuarioID,
		CURP:      "SAHM050101HDFLNAA2",
	}

	repo := newStubSolicitudRepo()
	catalogos := &stubCatalogos{grados: map[uint]bool{1: true}}
	svc := NewSolicitudService(repo, &stubBecarioRepo{becario: becario}, catalogos, &stubStorage{})

	return fixture{svc: svc, repo: repo, usuarioID: usuarioID, becarioID: becario.ID}
}

func aprovechamientoInput(becarioID string) dto.CrearAprovechamientoInput {
	return dto.CrearAprovechamientoInput{
		SolicitudComunInput: dto.SolicitudComunInput{
			BecarioID:    becarioID,
			ReciboNomina: archivo("recibo.pdf"),
			INE:          archivo("ine.pdf"),
		},
		GradoID:  1,
		Promedio: 8.5,
		Boleta:   archivo("boleta.pdf"),
	}
}

func TestCrearAprovechamiento(t *testing.T) {
	f := newFixture()

	solicitud, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, aprovechamientoInput(f.becarioID.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if solicitud.Estado != model.EstadoRecibida {
		t.Errorf("estado inicial = %q, want %q", solicitud.Estado, model.EstadoRecibida)
	}
	if solicitud.BecarioID != f.becarioID {
		t.Errorf("becario = %s, want %s", solicitud.BecarioID, f.becarioID)
	}
	if solicitud.FechaSolicitud.IsZero() {
		t.Error("fecha de solicitud not set")
	}
	if solicitud.ReciboNomina == "" || solicitud.INE == "" || solicitud.Boleta == "" {
		t.Errorf("document paths incomplete: %+v", solicitud)
	}
	if len(f.repo.creadas) != 1 {
		t.Fatalf("expected exactly one persisted application, got %d", len(f.repo.creadas))
	}
}

func TestCrearRejectsInFlightDuplicate(t *testing.T) {
	f := newFixture()
	f.repo.enCurso[model.CategoriaAprovechamiento] = true

	_, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, aprovechamientoInput(f.becarioID.String()))
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(f.repo.creadas) != 0 {
		t.Fatal("duplicate must not be persisted")
	}
}

func TestCrearAllowsOtherCategoryInFlight(t *testing.T) {
	f := newFixture()
	f.repo.enCurso[model.CategoriaExcelencia] = true

	_, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, aprovechamientoInput(f.becarioID.String()))
	if err != nil {
		t.Fatalf("in-flight application in another category must not block: %v", err)
	}
}

func TestCrearTranslatesConstraintViolation(t *testing.T) {
	// Two submissions can both pass the pre-check; the second insert then
	// hits the partial unique index and must surface the same duplicate
	// message.
	f := newFixture()
	f.repo.createErr = gorm.ErrDuplicatedKey

	_, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, aprovechamientoInput(f.becarioID.String()))
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCrearForeignScholarNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CrearAprovechamiento(context.Background(), uuid.New(), aprovechamientoInput(f.becarioID.String()))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a scholar of another account, got %v", err)
	}
}

func TestCrearMalformedScholarID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, aprovechamientoInput("no-un-uuid"))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCrearRejectsPromedioOutOfRange(t *testing.T) {
	f := newFixture()

	for _, promedio := range []float64{5.9, 10.1, 0} {
		input := aprovechamientoInput(f.becarioID.String())
		input.Promedio = promedio

		_, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, input)
		if !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("promedio %.1f: expected ErrInvalidInput, got %v", promedio, err)
		}
	}
}

func TestCrearRejectsUnknownGrado(t *testing.T) {
	f := newFixture()

	input := aprovechamientoInput(f.becarioID.String())
	input.GradoID = 99

	_, err := f.svc.CrearAprovechamiento(context.Background(), f.usuarioID, input)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a grade outside the catalog, got %v", err)
	}
	if len(f.repo.creadas) != 0 {
		t.Fatal("nothing must be persisted for an unknown grade")
	}
}

func TestCrearEspecialSanitizesFreeText(t *testing.T) {
	f := newFixture()

	input := dto.CrearEspecialInput{
		SolicitudComunInput: dto.SolicitudComunInput{
			BecarioID:    f.becarioID.String(),
			ReciboNomina: archivo("recibo.pdf"),
			INE:          archivo("ine.pdf"),
		},
		DiagnosticoMedico:  `TDAH <script>alert("x")</script>`,
		TipoEducacion:      "Educación especial",
		CertificadoMedico:  archivo("cert-medico.pdf"),
		CertificadoEscolar: archivo("cert-escolar.pdf"),
	}

	solicitud, err := f.svc.CrearEspecial(context.Background(), f.usuarioID, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(solicitud.DiagnosticoMedico, "<script>") {
		t.Errorf("diagnóstico not sanitized: %q", solicitud.DiagnosticoMedico)
	}
	if !strings.Contains(solicitud.DiagnosticoMedico, "TDAH") {
		t.Errorf("sanitizer stripped the text itself: %q", solicitud.DiagnosticoMedico)
	}
}

func TestListByCategoria(t *testing.T) {
	f := newFixture()
	f.repo.aprovechamiento = []model.SolicitudAprovechamiento{
		{SolicitudBase: model.SolicitudBase{ID: uuid.New(), BecarioID: f.becarioID}},
	}

	resp, err := f.svc.ListByCategoria(context.Background(), model.CategoriaAprovechamiento, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Categoria != model.CategoriaAprovechamiento {
		t.Errorf("categoria = %q, want %q", resp.Categoria, model.CategoriaAprovechamiento)
	}
	if len(resp.Aprovechamiento) != 1 {
		t.Errorf("aprovechamiento = %d entries, want 1", len(resp.Aprovechamiento))
	}
	if len(resp.Excelencia) != 0 || len(resp.Especial) != 0 {
		t.Error("other categories must stay empty")
	}

	if _, err := f.svc.ListByCategoria(context.Background(), model.Categoria("otra"), nil); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown category, got %v", err)
	}
}

func TestActualizarEstadoRejectsUnknownEstado(t *testing.T) {
	f := newFixture()

	err := f.svc.ActualizarEstado(context.Background(), model.CategoriaAprovechamiento, uuid.New(), dto.ActualizarEstadoInput{Estado: "X"})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestActualizarEstadoNotFound(t *testing.T) {
	f := newFixture()
	f.repo.updateErr = gorm.ErrRecordNotFound

	err := f.svc.ActualizarEstado(context.Background(), model.CategoriaAprovechamiento, uuid.New(), dto.ActualizarEstadoInput{Estado: "T"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActualizarEstadoReopenHitsIndex(t *testing.T) {
	// Reopening a finished application while another one is in flight trips
	// the same partial index as a duplicate submission.
	f := newFixture()
	f.repo.updateErr = gorm.ErrDuplicatedKey

	err := f.svc.ActualizarEstado(context.Background(), model.CategoriaAprovechamiento, uuid.New(), dto.ActualizarEstadoInput{Estado: "R"})
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestActualizarEstadoApplies(t *testing.T) {
	f := newFixture()

	err := f.svc.ActualizarEstado(context.Background(), model.CategoriaAprovechamiento, uuid.New(), dto.ActualizarEstadoInput{Estado: "T"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.repo.estadoActualizado == nil || *f.repo.estadoActualizado != model.EstadoOtorgada {
		t.Fatalf("estado not applied: %v", f.repo.estadoActualizado)
	}
}

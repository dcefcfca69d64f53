package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/scholar/dto"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/storage"
)

type stubBecarioRepo struct {
	becarios map[uuid.UUID]*model.Becario
	updates  int
}

func newStubBecarioRepo() *stubBecarioRepo {
	return &stubBecarioRepo{becarios: make(map[uuid.UUID]*model.Becario)}
}

func (s *stubBecarioRepo) Create(ctx context.Context, becario *model.Becario) error {
	if becario.ID == uuid.Nil {
		becario.ID = uuid.New()
	}
	copia := *becario
	s.becarios[becario.ID] = &copia
	return nil
}

func (s *stubBecarioRepo) FindOwned(ctx context.Context, id, usuarioID uuid.UUID) (*model.Becario, error) {
	becario, ok := s.becarios[id]
	if !ok || becario.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *becario
	return &copia, nil
}

func (s *stubBecarioRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Becario, error) {
	var becarios []model.Becario
	for _, becario := range s.becarios {
		if becario.UsuarioID == usuarioID {
			becarios = append(becarios, *becario)
		}
	}
	return becarios, nil
}

func (s *stubBecarioRepo) Update(ctx context.Context, becario *model.Becario) error {
	s.updates++
	copia := *becario
	s.becarios[becario.ID] = &copia
	return nil
}

// stubSolicitudes only answers the edit-block question; the rest of the
// interface is unused by the scholar service.
type stubSolicitudes struct {
	activa bool
}

func (s *stubSolicitudes) CreateAprovechamiento(ctx context.Context, solicitud *model.SolicitudAprovechamiento) error {
	return nil
}

func (s *stubSolicitudes) CreateExcelencia(ctx context.Context, solicitud *model.SolicitudExcelencia) error {
	return nil
}

func (s *stubSolicitudes) CreateEspecial(ctx context.Context, solicitud *model.SolicitudEspecial) error {
	return nil
}

func (s *stubSolicitudes) ExistsEnCurso(ctx context.Context, categoria model.Categoria, becarioID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubSolicitudes) ExistsActiva(ctx context.Context, becarioID uuid.UUID) (bool, error) {
	return s.activa, nil
}

func (s *stubSolicitudes) ListAprovechamientoByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudAprovechamiento, error) {
	return nil, nil
}

func (s *stubSolicitudes) ListExcelenciaByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudExcelencia, error) {
	return nil, nil
}

func (s *stubSolicitudes) ListEspecialByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.SolicitudEspecial, error) {
	return nil, nil
}

func (s *stubSolicitudes) ListAprovechamiento(ctx context.Context, estado *model.Estado) ([]model.SolicitudAprovechamiento, error) {
	return nil, nil
}

func (s *stubSolicitudes) ListExcelencia(ctx context.Context, estado *model.Estado) ([]model.SolicitudExcelencia, error) {
	return nil, nil
}

func (s *stubSolicitudes) ListEspecial(ctx context.Context, estado *model.Estado) ([]model.SolicitudEspecial, error) {
	return nil, nil
}

func (s *stubSolicitudes) UpdateEstado(ctx context.Context, categoria model.Categoria, id uuid.UUID, estado model.Estado, notas *string) error {
	return nil
}

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

func crearInput(curp string) dto.CrearBecarioInput {
	return dto.CrearBecarioInput{
		Nombre:          "María",
		ApellidoPaterno: "Sánchez",
		CURP:            curp,
		CURPArchivo:     archivo("curp.pdf"),
		ActaNacimiento:  archivo("acta.pdf"),
	}
}

func TestCrearBecario(t *testing.T) {
	repo := newStubBecarioRepo()
	svc := NewBecarioService(repo, &stubSolicitudes{}, &stubStorage{})
	usuarioID := uuid.New()

	resp, err := svc.Crear(context.Background(), usuarioID, crearInput("SAHM050101MDFLNAA2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.UsuarioID != usuarioID {
		t.Errorf("owner = %s, want %s", resp.UsuarioID, usuarioID)
	}
	if resp.Sexo != "M" {
		t.Errorf("sexo = %q, want M", resp.Sexo)
	}
	if resp.FechaNacimiento != "2005-01-01" {
		t.Errorf("fecha de nacimiento = %q, want 2005-01-01", resp.FechaNacimiento)
	}
	if resp.CURPArchivo == "" || resp.ActaNacimiento == "" {
		t.Errorf("document paths incomplete: %+v", resp)
	}
}

func TestCrearBecarioRejectsInvalidCURP(t *testing.T) {
	svc := NewBecarioService(newStubBecarioRepo(), &stubSolicitudes{}, &stubStorage{})

	_, err := svc.Crear(context.Background(), uuid.New(), crearInput("curp-malformada"))
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEditarBecario(t *testing.T) {
	repo := newStubBecarioRepo()
	svc := NewBecarioService(repo, &stubSolicitudes{}, &stubStorage{})
	usuarioID := uuid.New()

	creado, err := svc.Crear(context.Background(), usuarioID, crearInput("SAHM050101MDFLNAA2"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	resp, err := svc.Editar(context.Background(), usuarioID, creado.ID, dto.EditarBecarioInput{
		Nombre:          "María José",
		ApellidoPaterno: "Sánchez",
		CURP:            "SAHM050101MDFLNAA2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Nombre != "María José" {
		t.Errorf("nombre = %q, want %q", resp.Nombre, "María José")
	}
	if repo.updates != 1 {
		t.Errorf("expected one update, got %d", repo.updates)
	}
	// Files were not re-uploaded, so the stored paths must survive the edit.
	if resp.CURPArchivo != creado.CURPArchivo {
		t.Errorf("curp archivo changed without upload: %q -> %q", creado.CURPArchivo, resp.CURPArchivo)
	}
}

func TestEditarBecarioBlockedByActiveApplication(t *testing.T) {
	repo := newStubBecarioRepo()
	solicitudes := &stubSolicitudes{}
	svc := NewBecarioService(repo, solicitudes, &stubStorage{})
	usuarioID := uuid.New()

	creado, err := svc.Crear(context.Background(), usuarioID, crearInput("SAHM050101MDFLNAA2"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	solicitudes.activa = true

	_, err = svc.Editar(context.Background(), usuarioID, creado.ID, dto.EditarBecarioInput{
		Nombre:          "Otro",
		ApellidoPaterno: "Nombre",
		CURP:            "SAHM050101MDFLNAA2",
	})
	if !errors.Is(err, apperror.ErrPolicy) {
		t.Fatalf("expected ErrPolicy, got %v", err)
	}

	// The edit form resolves through the same gate.
	if _, err := svc.Get(context.Background(), usuarioID, creado.ID); !errors.Is(err, apperror.ErrPolicy) {
		t.Fatalf("expected ErrPolicy from Get, got %v", err)
	}
}

func TestEditarBecarioOfOtherAccountNotFound(t *testing.T) {
	repo := newStubBecarioRepo()
	svc := NewBecarioService(repo, &stubSolicitudes{}, &stubStorage{})

	creado, err := svc.Crear(context.Background(), uuid.New(), crearInput("SAHM050101MDFLNAA2"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err = svc.Editar(context.Background(), uuid.New(), creado.ID, dto.EditarBecarioInput{
		Nombre:          "Otro",
		ApellidoPaterno: "Nombre",
		CURP:            "SAHM050101MDFLNAA2",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

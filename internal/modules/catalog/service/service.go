package service

import (
	"context"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/catalog/repository"
)

// Catalogos bundles the reference data the worker and application forms need
// to populate their selects.
type Catalogos struct {
	Secciones          []model.Seccion          `json:"secciones"`
	Puestos            []model.Puesto           `json:"puestos"`
	Jurisdicciones     []model.Jurisdiccion     `json:"jurisdicciones"`
	LugaresAdscripcion []model.LugarAdscripcion `json:"lugares_adscripcion"`
	Grados             []model.Grado            `json:"grados"`
}

type CatalogoService interface {
	GetCatalogos(ctx context.Context) (*Catalogos, error)
	GetGrados(ctx context.Context) ([]model.Grado, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) GetCatalogos(ctx context.Context) (*Catalogos, error) {
	secciones, err := s.repo.ListSecciones(ctx)
	if err != nil {
		return nil, err
	}
	puestos, err := s.repo.ListPuestos(ctx)
	if err != nil {
		return nil, err
	}
	jurisdicciones, err := s.repo.ListJurisdicciones(ctx)
	if err != nil {
		return nil, err
	}
	lugares, err := s.repo.ListLugaresAdscripcion(ctx)
	if err != nil {
		return nil, err
	}
	grados, err := s.repo.ListGrados(ctx)
	if err != nil {
		return nil, err
	}

	return &Catalogos{
		Secciones:          secciones,
		Puestos:            puestos,
		Jurisdicciones:     jurisdicciones,
		LugaresAdscripcion: lugares,
		Grados:             grados,
	}, nil
}

func (s *catalogoService) GetGrados(ctx context.Context) ([]model.Grado, error) {
	return s.repo.ListGrados(ctx)
}

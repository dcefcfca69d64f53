package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotAvailable is returned by Resolve both when the path escapes the media
// root and when the file does not exist, so callers cannot tell the two apart.
var ErrNotAvailable = errors.New("archivo no disponible")

type localStorage struct {
	root string
}

// NewLocalStorage creates a disk-backed DocumentStorage rooted at mediaRoot.
// The root and the category subdirectories are created if missing.
func NewLocalStorage(mediaRoot string) (DocumentStorage, error) {
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}

	// Canonicalize once; the root must exist for EvalSymlinks to succeed.
	root, err := filepath.EvalSymlinks(mediaRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media root: %w", err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media root: %w", err)
	}

	for _, categoria := range []string{
		CategoriaCURP,
		CategoriaActaNacimiento,
		CategoriaReciboNomina,
		CategoriaINE,
		CategoriaBoleta,
		CategoriaCertificadoMedico,
		CategoriaCertificadoEscolar,
	} {
		if err := os.MkdirAll(filepath.Join(root, categoria), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create category dir %s: %w", categoria, err)
		}
	}

	return &localStorage{root: root}, nil
}

func (s *localStorage) Root() string {
	return s.root
}

func (s *localStorage) Save(ctx context.Context, file *multipart.FileHeader, categoria string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("no file provided")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Generated name; the original filename is user-controlled and only its
	// extension is kept.
	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	relPath := filepath.Join(categoria, name)

	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

func (s *localStorage) Resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(strings.TrimPrefix(relPath, "/"))
	full := filepath.Join(s.root, cleaned)

	// EvalSymlinks also fails for missing files, which deliberately collapses
	// "outside root" and "not found" into the same caller-visible error.
	real, err := filepath.EvalSymlinks(full)
	if err != nil {
		log.Debug().Str("path", relPath).Msg("document does not exist")
		return "", ErrNotAvailable
	}

	if real != s.root && !strings.HasPrefix(real, s.root+string(os.PathSeparator)) {
		log.Warn().Str("path", relPath).Msg("document path escapes media root")
		return "", ErrNotAvailable
	}

	info, err := os.Stat(real)
	if err != nil || info.IsDir() {
		return "", ErrNotAvailable
	}

	return real, nil
}

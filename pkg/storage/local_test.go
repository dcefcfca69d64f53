package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) DocumentStorage {
	t.Helper()

	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "media"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return store
}

func TestNewLocalStorageCreatesCategoryDirs(t *testing.T) {
	store := newTestStorage(t)

	for _, categoria := range []string{
		CategoriaCURP, CategoriaActaNacimiento, CategoriaReciboNomina,
		CategoriaINE, CategoriaBoleta, CategoriaCertificadoMedico,
		CategoriaCertificadoEscolar,
	} {
		info, err := os.Stat(filepath.Join(store.Root(), categoria))
		if err != nil {
			t.Errorf("category dir %s: %v", categoria, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("category %s is not a directory", categoria)
		}
	}
}

func TestResolveReturnsStoredFile(t *testing.T) {
	store := newTestStorage(t)

	rel := filepath.Join(CategoriaCURP, "doc.pdf")
	if err := os.WriteFile(filepath.Join(store.Root(), rel), []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	full, err := store.Resolve(rel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	contenido, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read resolved path: %v", err)
	}
	if string(contenido) != "pdf" {
		t.Errorf("resolved to the wrong file: %q", contenido)
	}

	// Resolving again must keep working; nothing about the store changes.
	if _, err := store.Resolve(rel); err != nil {
		t.Errorf("second Resolve: %v", err)
	}
}

func TestResolveRejectsEscapeAndMissingAlike(t *testing.T) {
	store := newTestStorage(t)

	// A sibling of the media root that a traversal could reach.
	fuera := filepath.Join(filepath.Dir(store.Root()), "secreto.txt")
	if err := os.WriteFile(fuera, []byte("secreto"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	casos := []struct {
		name string
		rel  string
	}{
		{"traversal to existing file", "../secreto.txt"},
		{"nested traversal", "curp/../../secreto.txt"},
		{"absolute path", "/etc/hostname"},
		{"missing file", "curp/no-existe.pdf"},
		{"directory instead of file", "curp"},
	}

	for _, tc := range casos {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Resolve(tc.rel)
			if !errors.Is(err, ErrNotAvailable) {
				t.Fatalf("Resolve(%q) = %v, want ErrNotAvailable", tc.rel, err)
			}
		})
	}
}

func TestResolveDoesNotFollowSymlinkOut(t *testing.T) {
	store := newTestStorage(t)

	fuera := filepath.Join(filepath.Dir(store.Root()), "secreto.txt")
	if err := os.WriteFile(fuera, []byte("secreto"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	enlace := filepath.Join(store.Root(), CategoriaCURP, "enlace.pdf")
	if err := os.Symlink(fuera, enlace); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := store.Resolve(filepath.Join(CategoriaCURP, "enlace.pdf"))
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("Resolve through symlink = %v, want ErrNotAvailable", err)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
)

var _ repository.CacheStore = (*FileStore)(nil)

// FileStore caché de respaldo sobre archivos JSON, un archivo por namespace
// (<dir>/<namespace>.json con un mapa id → valor). Un flock por archivo
// serializa escrituras entre procesos; dentro del proceso la política es
// last-writer-wins, igual que el storage del navegador que reemplaza.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de caché: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get devuelve el valor guardado o (nil, nil) si la clave no existe.
func (s *FileStore) Get(ctx context.Context, namespace, id string) ([]byte, error) {
	path := s.path(namespace)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock de caché: %w", err)
	}
	defer lock.Unlock()

	m, err := s.readAll(path)
	if err != nil {
		return nil, err
	}
	v, ok := m[id]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

// Set guarda el valor (sobrescribe sin condición).
func (s *FileStore) Set(ctx context.Context, namespace, id string, value []byte) error {
	path := s.path(namespace)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock de caché: %w", err)
	}
	defer lock.Unlock()

	m, err := s.readAll(path)
	if err != nil {
		return err
	}
	m[id] = string(value)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar caché: %w", err)
	}
	// Escritura a tmp + rename para no dejar un archivo a medias.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir caché: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("reemplazar caché: %w", err)
	}
	return nil
}

func (s *FileStore) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

func (s *FileStore) readAll(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("leer caché: %w", err)
	}
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		// Archivo corrupto: el caché es best-effort, se descarta y se rehace.
		return map[string]string{}, nil
	}
	return m, nil
}

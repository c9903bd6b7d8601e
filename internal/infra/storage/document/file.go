package document

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m04kA/SMC-ReservationService/pkg/filelock"
)

const (
	fileExt = ".json"
	lockExt = ".lock"
)

// FileStore хранит каждый документ в отдельном файле <dir>/<name>.json.
// Запись атомарна: временный файл в том же каталоге, fsync и rename поверх старого.
// Версия документа - FNV-64a хеш содержимого. Сравнение версии и rename выполняются
// под блокировкой файла <dir>/<name>.json.lock, общей для всех процессов.
type FileStore struct {
	dir string
}

// NewFileStore создает хранилище, при необходимости создавая каталог
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: NewFileStore - create dir %s: %v", ErrWrite, dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path возвращает путь к файлу документа
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Get читает документ целиком
func (s *FileStore) Get(ctx context.Context, name string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	payload, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Get - read %s: %v", ErrRead, name, err)
	}

	return payload, contentVersion(payload), nil
}

// Put заменяет документ, если его содержимое не менялось с версии expectedVersion
func (s *FileStore) Put(ctx context.Context, name string, payload []byte, expectedVersion int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := validateName(name); err != nil {
		return 0, err
	}

	unlock, err := filelock.New(s.Path(name)+lockExt, 0).Lock(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: Put - lock %s: %v", ErrWrite, name, err)
	}
	defer unlock()

	_, current, err := s.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	if current != expectedVersion {
		return 0, fmt.Errorf("%w: Put - %s: expected version %d, got %d", ErrVersionConflict, name, expectedVersion, current)
	}

	if err := s.writeAtomic(name, payload); err != nil {
		return 0, err
	}

	return contentVersion(payload), nil
}

func (s *FileStore) writeAtomic(name string, payload []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: Put - create temp file: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()

	// До rename прежний документ не тронут, временный файл удаляем при любой ошибке
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: Put - write temp file: %v", ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: Put - sync temp file: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: Put - close temp file: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		return fmt.Errorf("%w: Put - rename %s: %v", ErrWrite, name, err)
	}

	committed = true
	return nil
}

// contentVersion хеш содержимого, никогда не равный 0
func contentVersion(payload []byte) int64 {
	h := fnv.New64a()
	_, _ = h.Write(payload)
	v := int64(h.Sum64())
	if v == 0 {
		v = 1
	}
	return v
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

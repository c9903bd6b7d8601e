// Package session хранит вход пользователя CLI между запусками: подписанный и зашифрованный
// securecookie токен в файле.
package session

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	sessionName = "smc_session"
	keyFileExt  = ".key"
	hashKeyLen  = 32
	blockKeyLen = 32
)

// Manager читает и пишет файл сессии
type Manager struct {
	sc   *securecookie.SecureCookie
	path string
}

// Keys ключи подписи и шифрования
type Keys struct {
	Hash  []byte
	Block []byte
}

// DecodeKeys разбирает ключи из base64. Пустые строки дают пустые Keys.
func DecodeKeys(hashKey, blockKey string) (Keys, error) {
	var keys Keys
	var err error

	if hashKey != "" {
		if keys.Hash, err = base64.StdEncoding.DecodeString(hashKey); err != nil {
			return Keys{}, fmt.Errorf("%w: hash key: %v", ErrInvalidKey, err)
		}
	}
	if blockKey != "" {
		if keys.Block, err = base64.StdEncoding.DecodeString(blockKey); err != nil {
			return Keys{}, fmt.Errorf("%w: block key: %v", ErrInvalidKey, err)
		}
		switch len(keys.Block) {
		case 16, 24, 32:
		default:
			return Keys{}, fmt.Errorf("%w: block key must be 16, 24 or 32 bytes, got %d", ErrInvalidKey, len(keys.Block))
		}
	}

	return keys, nil
}

// LoadOrCreateKeys читает ключи из <path>.key, создавая файл со случайными ключами при первом запуске
func LoadOrCreateKeys(path string) (Keys, error) {
	keyPath := path + keyFileExt

	data, err := os.ReadFile(keyPath)
	if err == nil {
		hashKey, blockKey, ok := strings.Cut(strings.TrimSpace(string(data)), "\n")
		if !ok {
			return Keys{}, fmt.Errorf("%w: key file %s", ErrInvalidKey, keyPath)
		}
		return DecodeKeys(strings.TrimSpace(hashKey), strings.TrimSpace(blockKey))
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Keys{}, fmt.Errorf("%w: read key file: %v", ErrStorage, err)
	}

	keys := Keys{
		Hash:  securecookie.GenerateRandomKey(hashKeyLen),
		Block: securecookie.GenerateRandomKey(blockKeyLen),
	}
	if keys.Hash == nil || keys.Block == nil {
		return Keys{}, fmt.Errorf("%w: failed to generate keys", ErrInvalidKey)
	}

	content := base64.StdEncoding.EncodeToString(keys.Hash) + "\n" + base64.StdEncoding.EncodeToString(keys.Block) + "\n"
	if err := writePrivate(keyPath, []byte(content)); err != nil {
		return Keys{}, err
	}

	return keys, nil
}

// NewManager создает менеджер сессии. maxAge ограничивает срок жизни входа.
func NewManager(path string, keys Keys, maxAge time.Duration) (*Manager, error) {
	if len(keys.Hash) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidKey)
	}

	sc := securecookie.New(keys.Hash, keys.Block)
	sc.MaxAge(int(maxAge.Seconds()))

	return &Manager{sc: sc, path: path}, nil
}

// Login сохраняет identity как текущего пользователя
func (m *Manager) Login(username domain.Identity) error {
	value := map[string]string{"uid": string(username)}
	encoded, err := m.sc.Encode(sessionName, value)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrInvalidSession, err)
	}
	return writePrivate(m.path, []byte(encoded))
}

// Current возвращает identity вошедшего пользователя
func (m *Manager) Current() (domain.Identity, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("%w: read: %v", ErrStorage, err)
	}

	value := map[string]string{}
	if err := m.sc.Decode(sessionName, strings.TrimSpace(string(data)), &value); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	uid := value["uid"]
	if uid == "" {
		return "", ErrInvalidSession
	}
	return domain.Identity(uid), nil
}

// Logout удаляет файл сессии. Повторный выход не ошибка.
func (m *Manager) Logout() error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove: %v", ErrStorage, err)
	}
	return nil
}

func writePrivate(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("%w: create dir: %v", ErrStorage, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, path, err)
	}
	return nil
}

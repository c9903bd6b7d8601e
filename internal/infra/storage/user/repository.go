package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"
)

// Repository хранит всех пользователей одним документом domain.UsersDocument
type Repository struct {
	store Store
	name  string
}

// NewRepository создает репозиторий пользователей
func NewRepository(store Store) *Repository {
	return &Repository{store: store, name: domain.UsersDocument}
}

// Load читает всех пользователей. Отсутствующий документ - пустой набор.
func (r *Repository) Load(ctx context.Context) (domain.UserSnapshot, error) {
	payload, version, err := r.store.Get(ctx, r.name)
	if err != nil {
		return domain.UserSnapshot{}, fmt.Errorf("%w: Load - get %s: %w", ErrLoad, r.name, err)
	}
	if version == 0 {
		return domain.UserSnapshot{Users: make(domain.UserSet)}, nil
	}

	users, err := decode(payload)
	if err != nil {
		return domain.UserSnapshot{}, fmt.Errorf("%w: Load - decode %s: %w", ErrLoad, r.name, err)
	}

	return domain.UserSnapshot{Users: users, Version: version}, nil
}

// Save перезаписывает документ, если он не менялся с момента чтения snapshot
func (r *Repository) Save(ctx context.Context, snapshot domain.UserSnapshot) (domain.UserSnapshot, error) {
	payload, err := encode(snapshot.Users)
	if err != nil {
		return domain.UserSnapshot{}, fmt.Errorf("%w: Save - encode: %v", ErrSave, err)
	}

	version, err := r.store.Put(ctx, r.name, payload, snapshot.Version)
	if err != nil {
		return domain.UserSnapshot{}, fmt.Errorf("%w: Save - put %s: %w", ErrSave, r.name, err)
	}

	return domain.UserSnapshot{Users: snapshot.Users, Version: version}, nil
}

// GetByUsername возвращает пользователя или nil, если его нет
func (r *Repository) GetByUsername(ctx context.Context, username domain.Identity) (*domain.User, error) {
	snapshot, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := snapshot.Users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func encode(users domain.UserSet) ([]byte, error) {
	raw := make(map[string]record, len(users))
	for username, u := range users {
		raw[string(username)] = record{
			ID:        u.ID,
			Username:  string(u.Username),
			Password:  string(u.PasswordHash),
			FirstName: u.FirstName,
			LastName:  u.LastName,
			CreatedAt: u.CreatedAt.UTC(),
		}
	}

	payload, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(payload, '\n'), nil
}

func decode(payload []byte) (domain.UserSet, error) {
	var raw map[string]record
	if err := document.DecodeJSON(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrMalformedDocument)
	}

	users := make(domain.UserSet, len(raw))
	for username, rec := range raw {
		if username == "" || rec.Username != username {
			return nil, fmt.Errorf("%w: username mismatch for key %q", ErrMalformedDocument, username)
		}
		if rec.Password == "" {
			return nil, fmt.Errorf("%w: user %q has no password hash", ErrMalformedDocument, username)
		}

		users[domain.Identity(username)] = domain.User{
			ID:           rec.ID,
			Username:     domain.Identity(rec.Username),
			PasswordHash: []byte(rec.Password),
			FirstName:    rec.FirstName,
			LastName:     rec.LastName,
			CreatedAt:    rec.CreatedAt,
		}
	}

	return users, nil
}

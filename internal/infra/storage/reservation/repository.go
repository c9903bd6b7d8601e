package reservation

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Repository хранит весь набор бронирований одним документом.
// Каждое изменение - полный цикл Load, изменение в памяти, Save с проверкой версии.
type Repository struct {
	store Store
	name  string
}

// NewRepository создает репозиторий поверх документа domain.ReservationsDocument
func NewRepository(store Store) *Repository {
	return &Repository{store: store, name: domain.ReservationsDocument}
}

// Load читает набор бронирований.
// Отсутствующий документ - пустой набор с версией 0, поврежденный - ErrMalformedDocument.
func (r *Repository) Load(ctx context.Context) (domain.Snapshot, error) {
	payload, version, err := r.store.Get(ctx, r.name)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: Load - get %s: %w", ErrLoad, r.name, err)
	}
	if version == 0 {
		return domain.Snapshot{Set: domain.NewReservationSet()}, nil
	}

	set, err := Decode(payload)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: Load - decode %s: %w", ErrLoad, r.name, err)
	}

	return domain.Snapshot{Set: set, Version: version}, nil
}

// Save полностью перезаписывает документ, если он не менялся с момента чтения snapshot.
// Возвращает снимок с новой версией. Конфликт версий оборачивает txmanager.ErrConflict.
func (r *Repository) Save(ctx context.Context, snapshot domain.Snapshot) (domain.Snapshot, error) {
	payload, err := Encode(snapshot.Set)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: Save - %w", ErrSave, err)
	}

	version, err := r.store.Put(ctx, r.name, payload, snapshot.Version)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: Save - put %s: %w", ErrSave, r.name, err)
	}

	return domain.Snapshot{Set: snapshot.Set, Version: version}, nil
}

package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

// Repository хранилище записей (агенды, месячные клиенты, детский сад, отель).
// Коллекция передаётся по имени, набор колонок берётся из реестра tables.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает запись коллекции по id
func (r *Repository) Get(ctx context.Context, collection string, id string) (domain.HostRecord, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(t.columns...).
		From(collection).
		Where(squirrel.Eq{domain.FieldID: id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	record, err := t.scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		if errors.Is(err, ErrScanRow) {
			return nil, fmt.Errorf("Get - %s id=%s: %w", collection, id, err)
		}
		return nil, fmt.Errorf("%w: Get - scan %s: %v", ErrScanRow, collection, err)
	}

	return record, nil
}

// Update обновляет переданные поля записи по id и возвращает обновлённую строку.
// Один запрос UPDATE ... RETURNING, без транзакции и без повторов:
// повтор после неоднозначной ошибки может применить изменение дважды.
func (r *Repository) Update(ctx context.Context, collection string, id string, fields map[string]interface{}) (domain.HostRecord, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	query, args, err := psqlbuilder.Update(collection).
		SetMap(fields).
		Where(squirrel.Eq{domain.FieldID: id}).
		Suffix("RETURNING " + strings.Join(t.columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	record, err := t.scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		if errors.Is(err, ErrScanRow) {
			return nil, fmt.Errorf("Update - %s id=%s: %w", collection, id, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update %s: %v", ErrExecQuery, collection, err)
	}

	return record, nil
}

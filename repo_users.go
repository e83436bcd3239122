package fastauth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// usersStore is the bun backed UserStore. It works for any UserRecord
// whose concrete type is a bun model, which includes anything that
// embeds User
type usersStore[T UserRecord] struct {
	repository.Repository[T]
	db        *bun.DB
	newRecord func() T
}

// NewUsersStore returns a UserStore persisted through bun. newRecord
// builds an empty record of the host's model type
func NewUsersStore[T UserRecord](db *bun.DB, newRecord func() T) UserStore[T] {
	repo := repository.NewRepository[T](db, repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID: func(u T) uuid.UUID {
			return u.GetID()
		},
		SetID: func(u T, id uuid.UUID) {
			u.SetID(id)
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &usersStore[T]{
		Repository: repo,
		db:         db,
		newRecord:  newRecord,
	}
}

func (s *usersStore[T]) FindByEmail(ctx context.Context, email string) (T, error) {
	return s.findOne(ctx, "?TableAlias.email = ?", email)
}

func (s *usersStore[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	return s.findOne(ctx, "?TableAlias.id = ?", id.String())
}

func (s *usersStore[T]) FindByIDAndToken(ctx context.Context, id uuid.UUID, token string) (T, error) {
	var zero T

	record := s.newRecord()
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Where("?TableAlias.access_token = ?", token).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return zero, mapStoreError(err)
	}

	return record, nil
}

func (s *usersStore[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T

	if record.GetID() == uuid.Nil {
		record.SetID(uuid.New())
	}

	created, err := s.Repository.CreateTx(ctx, s.db, record)
	if err != nil {
		if IsUniqueConstraintError(err) {
			return zero, ErrUserAlreadyExists
		}
		return zero, err
	}

	return created, nil
}

func (s *usersStore[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T

	updated, err := s.Repository.UpdateTx(ctx, s.db, record,
		repository.UpdateByID(record.GetID().String()),
	)
	if err != nil {
		return zero, mapStoreError(err)
	}

	return updated, nil
}

func (s *usersStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	record := s.newRecord()
	res, err := s.db.NewDelete().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)

	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (s *usersStore[T]) findOne(ctx context.Context, where string, arg any) (T, error) {
	var zero T

	record := s.newRecord()
	err := s.db.NewSelect().
		Model(record).
		Where(where, arg).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return zero, mapStoreError(err)
	}

	return record, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
		return ErrUserNotFound
	}
	return err
}

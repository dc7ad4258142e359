package account

import (
	"context"
	"errors"

	"user-directory/database"

	"gorm.io/gorm"
)

// Store is the persistent collection of accounts. Writes are committed before returning and are visible
// to any subsequent read.
type Store interface {
	Insert(m Model) (Model, error)
	FindById(id uint32) (Model, error)
	FindByUsername(username string) (Model, error)
	ExistsById(id uint32) (bool, error)
	Update(m Model) (Model, error)
	ListAll() ([]Model, error)
	Transaction(f func(s Store) error) error
	WithContext(ctx context.Context) Store
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Insert(m Model) (Model, error) {
	return create(s.db)(m)
}

func (s *gormStore) FindById(id uint32) (Model, error) {
	m, err := database.ModelProvider[Model, Entity](s.db)(entityById(id), Make)()
	return m, translate(err)
}

func (s *gormStore) FindByUsername(username string) (Model, error) {
	m, err := database.ModelProvider[Model, Entity](s.db)(entityByUsername(username), Make)()
	return m, translate(err)
}

func (s *gormStore) ExistsById(id uint32) (bool, error) {
	return exists(s.db)(id)
}

// Update overwrites every mutable column of the stored record with the values held by m.
func (s *gormStore) Update(m Model) (Model, error) {
	err := update(s.db)(m.Id(),
		updateUsername(m.Username()),
		updatePassword(m.Password()),
		updateToken(m.Token()),
		updateStatus(m.Status()),
		updateCreationDate(m.CreationDate()),
		updateBirthday(m.Birthday()),
	)
	if err != nil {
		return Model{}, err
	}
	return m, nil
}

func (s *gormStore) ListAll() ([]Model, error) {
	ms, err := database.ModelSliceProvider[Model, Entity](s.db)(allEntities, Make)()
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = make([]Model, 0)
	}
	return ms, nil
}

func (s *gormStore) Transaction(f func(s Store) error) error {
	return database.ExecuteTransaction(s.db, func(tx *gorm.DB) error {
		return f(&gormStore{db: tx})
	})
}

func (s *gormStore) WithContext(ctx context.Context) Store {
	return &gormStore{db: s.db.WithContext(ctx)}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

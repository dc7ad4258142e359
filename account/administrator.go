package account

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type EntityUpdateFunction func() ([]string, func(e *Entity))

func create(db *gorm.DB) func(m Model) (Model, error) {
	return func(m Model) (Model, error) {
		e := toEntity(m)
		e.ID = 0

		err := db.Create(&e).Error
		if err != nil {
			if isUniqueViolation(err) {
				return Model{}, ErrUsernameTaken
			}
			return Model{}, err
		}
		return Make(e)
	}
}

func update(db *gorm.DB) func(id uint32, modifiers ...EntityUpdateFunction) error {
	return func(id uint32, modifiers ...EntityUpdateFunction) error {
		e := &Entity{}
		var columns []string
		for _, modifier := range modifiers {
			c, u := modifier()
			columns = append(columns, c...)
			u(e)
		}
		if len(columns) == 0 {
			return nil
		}

		res := db.Model(&Entity{}).Where("id = ?", id).Select(columns).Updates(e)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}
}

func exists(db *gorm.DB) func(id uint32) (bool, error) {
	return func(id uint32) (bool, error) {
		var count int64
		err := db.Model(&Entity{}).Where("id = ?", id).Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

func updateUsername(username string) EntityUpdateFunction {
	return func() ([]string, func(e *Entity)) {
		return []string{"Username"}, func(e *Entity) {
			e.Username = username
		}
	}
}

func updatePassword(password string) EntityUpdateFunction {
	return func() ([]string, func(e *Entity)) {
		return []string{"Password"}, func(e *Entity) {
			e.Password = password
		}
	}
}

func updateToken(token string) EntityUpdateFunction {
	return func() ([]string, func(e *Entity)) {
		return []string{"Token"}, func(e *Entity) {
			e.Token = token
		}
	}
}

func updateStatus(status Status) EntityUpdateFunction {
	return func() ([]string, func(e *Entity)) {
		return []string{"Status"}, func(e *Entity) {
			e.Status = string(status)
		}
	}
}

func updateCreationDate(creationDate time.Time) EntityUpdateFunction {
	return func() ([]string, func(e *Entity)) {
		return []string{"CreationDate"}, func(e *Entity) {
			e.CreationDate = creationDate
		}
	}
}

func updateBirthday(birthday *time.Time) EntityUpdateFunction {
	return func() ([]string, func(e *Entity)) {
		return []string{"Birthday"}, func(e *Entity) {
			e.Birthday = birthday
		}
	}
}

// isUniqueViolation recognizes a unique constraint failure whether or not the dialector translated it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

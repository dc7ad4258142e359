package account

import (
	"time"

	"gorm.io/gorm"
)

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

type Entity struct {
	ID           uint32    `gorm:"primaryKey;autoIncrement;not null"`
	Username     string    `gorm:"not null;uniqueIndex"`
	Password     string    `gorm:"not null"`
	Token        string    `gorm:"not null"`
	Status       string    `gorm:"not null;default:OFFLINE"`
	CreationDate time.Time `gorm:"not null"`
	Birthday     *time.Time
}

func (e Entity) TableName() string {
	return "accounts"
}

func Make(e Entity) (Model, error) {
	b := NewBuilder().
		SetId(e.ID).
		SetUsername(e.Username).
		SetPassword(e.Password).
		SetToken(e.Token).
		SetStatus(Status(e.Status)).
		SetCreationDate(e.CreationDate).
		SetBirthday(e.Birthday)
	return b.Build(), nil
}

func toEntity(m Model) Entity {
	return Entity{
		ID:           m.Id(),
		Username:     m.Username(),
		Password:     m.Password(),
		Token:        m.Token(),
		Status:       string(m.Status()),
		CreationDate: m.CreationDate(),
		Birthday:     m.Birthday(),
	}
}

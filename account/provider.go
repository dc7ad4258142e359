package account

import (
	"user-directory/database"

	"github.com/Chronicle20/atlas-model/model"
	"gorm.io/gorm"
)

func entityById(id uint32) database.EntityProvider[Entity] {
	return func(db *gorm.DB) model.Provider[Entity] {
		where := map[string]interface{}{"id": id}
		var result = Entity{}
		err := db.Where(where).First(&result).Error
		if err != nil {
			return model.ErrorProvider[Entity](err)
		}
		return model.FixedProvider[Entity](result)
	}
}

func entityByUsername(username string) database.EntityProvider[Entity] {
	return func(db *gorm.DB) model.Provider[Entity] {
		where := map[string]interface{}{"username": username}
		var result = Entity{}
		err := db.Where(where).First(&result).Error
		if err != nil {
			return model.ErrorProvider[Entity](err)
		}
		return model.FixedProvider[Entity](result)
	}
}

func allEntities(db *gorm.DB) model.Provider[[]Entity] {
	var results []Entity
	err := db.Order("id").Find(&results).Error
	if err != nil {
		return model.ErrorProvider[[]Entity](err)
	}
	return model.FixedProvider[[]Entity](results)
}

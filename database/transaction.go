package database

import "gorm.io/gorm"

// ExecuteTransaction runs f inside a transaction on db. When db is already inside a transaction, f joins
// it instead of opening a nested one.
func ExecuteTransaction(db *gorm.DB, f func(tx *gorm.DB) error) error {
	if _, ok := db.Statement.ConnPool.(gorm.TxCommitter); ok {
		return f(db)
	}
	return db.Transaction(f)
}

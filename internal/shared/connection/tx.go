package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements run on tx. The original
// handle is left untouched. A nil tx returns db as is.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}

	// A non-nil Context forces gorm to clone the statement before we swap the pool.
	txDB := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	txDB.Statement.ConnPool = tx
	return txDB
}

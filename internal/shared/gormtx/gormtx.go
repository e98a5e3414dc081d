package gormtx

import (
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a session whose statements all run on tx instead of the
// connection pool, so repository work joins the caller's transaction and
// rolls back with it. Same binding gorm's own Begin performs.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return session
}

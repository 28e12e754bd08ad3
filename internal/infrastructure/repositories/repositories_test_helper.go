package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		phone_number TEXT,
		date_of_birth DATETIME NOT NULL,
		gender TEXT NOT NULL,
		country TEXT NOT NULL,
		registered_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		document_name TEXT NOT NULL,
		document_type TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		file_type TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createFormControlTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE form_controls (
		id TEXT PRIMARY KEY,
		control_type TEXT NOT NULL,
		control_name TEXT NOT NULL,
		option_value TEXT NOT NULL,
		display_text TEXT,
		display_order INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func seedFormControl(t *testing.T, db *gorm.DB, group, value string, order int, active bool) {
	t.Helper()
	mustExec(t, db, `INSERT INTO form_controls(id,control_type,control_name,option_value,display_text,display_order,is_active,created_at,updated_at)
	VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s-%s-%d", group, value, order))).String(),
		"select", group, value, nil, order, active, time.Now(), time.Now())
}

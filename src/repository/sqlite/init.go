package sqlite

import "database/sql"

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	task_timestamp INTEGER NOT NULL,
	task_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_timestamp ON tasks (task_timestamp);
`

func DatabaseInit(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

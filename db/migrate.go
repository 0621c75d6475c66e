package db

import "database/sql"

// Migrate bootstraps the two tables the app owns. Statements are idempotent
// so it runs on every startup.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS app_user (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT app_user_username_key UNIQUE (username),
			CONSTRAINT app_user_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS favorite (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES app_user(id),
			title TEXT NOT NULL DEFAULT '',
			published_at TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT favorite_user_url_key UNIQUE (user_id, url)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

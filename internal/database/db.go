package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema at startup. Statements are idempotent so the
// function can run on every boot. Child tables cascade on movie deletion,
// which keeps a movie and its episodes/ads behaving as one document.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username      VARCHAR(64)  NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_username (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS movies (
			id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			title      VARCHAR(255) NOT NULL DEFAULT '',
			poster_url VARCHAR(512) NOT NULL DEFAULT '',
			video_url  VARCHAR(512) NOT NULL DEFAULT '',
			category   VARCHAR(128) NOT NULL DEFAULT '',
			rating     VARCHAR(32)  NOT NULL DEFAULT '',
			created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS episodes (
			id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			movie_id  BIGINT UNSIGNED NOT NULL,
			ord       INT UNSIGNED    NOT NULL,
			title     VARCHAR(255)    NOT NULL DEFAULT '',
			video_url VARCHAR(512)    NOT NULL DEFAULT '',
			KEY idx_episodes_movie (movie_id),
			CONSTRAINT fk_episodes_movie FOREIGN KEY (movie_id)
				REFERENCES movies(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS ads (
			id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			movie_id  BIGINT UNSIGNED NOT NULL,
			ord       INT UNSIGNED    NOT NULL,
			kind      ENUM('montage','banner','video')  NOT NULL,
			url       VARCHAR(512)    NOT NULL DEFAULT '',
			placement ENUM('pre','mid','post','banner') NOT NULL,
			KEY idx_ads_movie (movie_id),
			CONSTRAINT fk_ads_movie FOREIGN KEY (movie_id)
				REFERENCES movies(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

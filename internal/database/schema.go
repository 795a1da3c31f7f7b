package database

import (
	"context"
	"database/sql"
)

// Schema statements are idempotent so Migrate can run on every startup.
// Document-shaped movie attributes (genres, cast) and the per-show seat
// occupancy map live in JSON columns; everything queried or joined on has
// its own column and index.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
        external_id       VARCHAR(32)  NOT NULL,
        title             VARCHAR(255) NOT NULL,
        overview          TEXT         NOT NULL,
        poster_path       VARCHAR(255) NOT NULL DEFAULT '',
        backdrop_path     VARCHAR(255) NOT NULL DEFAULT '',
        genres            JSON         NOT NULL,
        cast_members      JSON         NOT NULL,
        release_date      VARCHAR(10)  NOT NULL DEFAULT '',
        original_language VARCHAR(8)   NOT NULL DEFAULT '',
        tagline           VARCHAR(512) NOT NULL DEFAULT '',
        vote_average      DOUBLE       NOT NULL DEFAULT 0,
        runtime_minutes   INT          NOT NULL DEFAULT 0,
        created_at        TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (external_id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
        id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        movie_external_id VARCHAR(32)     NOT NULL,
        show_datetime     DATETIME        NOT NULL,
        price             DOUBLE          NOT NULL,
        occupied_seats    JSON            NOT NULL,
        created_at        TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        KEY idx_shows_movie (movie_external_id),
        KEY idx_shows_datetime (show_datetime),
        CONSTRAINT fk_shows_movie FOREIGN KEY (movie_external_id)
            REFERENCES movies (external_id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the movies and shows tables when they do not exist yet,
// so a fresh database is usable without out-of-band setup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

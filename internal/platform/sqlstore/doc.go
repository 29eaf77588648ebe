// Package sqlstore implements store.DeckStore on database/sql.
//
// Two drivers are supported: PostgreSQL through the pgx stdlib adapter and
// SQLite through the pure-Go modernc.org/sqlite driver. Both share the same
// SQL, which uses $N placeholders. Schema changes are goose migrations
// embedded per dialect and applied with Migrator.
package sqlstore

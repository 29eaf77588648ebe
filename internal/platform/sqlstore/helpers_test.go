package sqlstore_test

import (
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/testdb"
)

func testLogger() *slog.Logger {
	return testdb.DiscardLogger()
}

// openTestDB opens a fresh SQLite database without the schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return testdb.OpenWithT(t)
}

// migratedTestDB opens a fresh SQLite database with the schema applied.
func migratedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return testdb.GetTestDBWithT(t)
}

func testDeck(t *testing.T, name string, created time.Time, cards ...domain.Card) *domain.Deck {
	t.Helper()

	if len(cards) == 0 {
		cards = []domain.Card{{Front: "Q1", Back: "A1"}, {Front: "Q2", Back: "A2"}}
	}
	deck, err := domain.NewDeck(name, cards, created)
	require.NoError(t, err)
	return deck
}

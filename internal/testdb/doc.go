// Package testdb provides database helpers for tests.
//
// Every test gets its own SQLite database in t.TempDir() with the embedded
// migrations applied, so tests can run in parallel without sharing state.
// WithTx additionally runs a function inside a transaction that is always
// rolled back.
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        decks := sqlstore.NewDeckStore(db, nil).WithTx(tx)
//	        // ...
//	    })
//	}
package testdb

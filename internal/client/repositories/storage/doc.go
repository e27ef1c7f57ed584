// Package storage is the client's durable key-value layer, the terminal
// counterpart of a browser's localStorage.
//
// Values live in the sqlite table "storage" created by the embedded goose
// migrations (see internal/client/migrations). SQLiteRepository builds its
// statements with squirrel and runs them over a dbx.DBTX, so it works with
// either *sql.DB or *sql.Tx.
//
// Typical Usage
//
//	repo := storage.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "chat-app-storage", payload)
//	v, _ := repo.Get(ctx, "chat-app-storage") // nil when absent
//	_ = repo.Delete(ctx, "chat-app-storage")
package storage

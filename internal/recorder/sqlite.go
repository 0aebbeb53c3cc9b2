package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the scan loop's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			pass_id        TEXT,
			symbol         TEXT NOT NULL,
			tier           TEXT NOT NULL,
			close          REAL,
			rsi            REAL,
			volume         REAL,
			quote_volume   REAL,
			base_range_pct REAL,
			body_pct       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,

		`CREATE TABLE IF NOT EXISTS scan_passes (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			pass_id       TEXT,
			universe_size INTEGER,
			scanned       INTEGER,
			skipped       INTEGER,
			signals       INTEGER,
			duration_ms   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_passes_ts ON scan_passes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(rec *SignalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signals
		(timestamp, pass_id, symbol, tier, close, rsi, volume, quote_volume, base_range_pct, body_pct)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.PassID, rec.Symbol, rec.Tier,
		rec.Close, rec.RSI, rec.Volume, rec.QuoteVolume24,
		rec.BaseRangePct, rec.BodyPct,
	)
	return err
}

func (r *SQLiteRecorder) RecordPass(sum *PassSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_passes
		(timestamp, pass_id, universe_size, scanned, skipped, signals, duration_ms)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), sum.PassID, sum.UniverseSize,
		sum.Scanned, sum.Skipped, sum.Signals,
		sum.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

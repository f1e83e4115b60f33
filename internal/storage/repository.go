package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/negspulse/internal/domain/models"
	"github.com/guttosm/negspulse/internal/negs"
	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ErrDocumentExists is returned when a document for the same session date and
// user code is already stored. Nothing is written in that case.
var ErrDocumentExists = errors.New("document already stored for session and user code")

// NegsRepository defines contract for DB operations on decoded NEGS documents.
type NegsRepository interface {
	InsertDocument(filename string, doc *negs.Document, batchSize int) (int64, error)
	ReplaceDocument(filename string, doc *negs.Document, batchSize int) (int64, error)
	HasDocument(sessionDate time.Time, userCode string) (bool, error)
	ListFiles(limit int) ([]models.NegsFile, error)
	GetAggregateByTicker(ticker string, startDate *time.Time, endDate *time.Time) (*models.Aggregate, error)
}

type negsRepository struct {
	db *sql.DB
}

func NewNegsRepository(db *sql.DB) NegsRepository {
	return &negsRepository{db: db}
}

const insertFileSQL = `
		INSERT INTO negs_files (
			filename, session_date, user_code, layout,
			tipo_registro, nome_arquivo, codigo_arquivo, codigo_origem, codigo_destino,
			data_geracao, reserva, data_geracao_arquivo, total_registros, trade_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (session_date, user_code) DO NOTHING
		RETURNING id`

const deleteFileSQL = `DELETE FROM negs_files WHERE session_date = $1 AND user_code = $2`

// tradeCopyColumns lists negs_trades columns in COPY order: the row keys
// followed by every trade column of the extended table, which is a superset
// of the standard one.
func tradeCopyColumns() []string {
	return append([]string{"file_id", "session_date", "line_no"}, negs.TradeColumns(negs.LayoutExtended)...)
}

// InsertDocument stores the header/trailer row and every trade of doc in a
// single transaction. Trades are streamed with COPY in batches of batchSize.
//
// Returns the negs_files id of the new document, or ErrDocumentExists when the
// session and user code are already stored (including by a concurrent writer).
func (r *negsRepository) InsertDocument(filename string, doc *negs.Document, batchSize int) (int64, error) {
	return r.storeDocument(filename, doc, batchSize, false)
}

// ReplaceDocument deletes the stored document for doc's session and user code
// (trades cascade) and inserts doc, all in one transaction: on any failure the
// previous document is left untouched.
func (r *negsRepository) ReplaceDocument(filename string, doc *negs.Document, batchSize int) (int64, error) {
	return r.storeDocument(filename, doc, batchSize, true)
}

func (r *negsRepository) storeDocument(filename string, doc *negs.Document, batchSize int, replace bool) (int64, error) {
	session, err := doc.Header.Session()
	if err != nil {
		return 0, err
	}
	if batchSize <= 0 {
		batchSize = len(doc.Trades) + 1
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if replace {
		if _, err := tx.Exec(deleteFileSQL, session, doc.Header.UserCode); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete negs_files: %w", err)
		}
	}

	var fileID int64
	err = tx.QueryRow(insertFileSQL,
		filename,
		session,
		doc.Header.UserCode,
		doc.Layout.String(),
		doc.Header.RecordType,
		doc.Header.FileName,
		doc.Header.FileCode,
		doc.Header.OriginCode,
		doc.Header.DestinationCode,
		doc.Header.GeneratedOn,
		doc.Header.Reserved,
		doc.Trailer.GeneratedOn,
		doc.Trailer.TotalRecords,
		len(doc.Trades),
	).Scan(&fileID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return 0, ErrDocumentExists
	}
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert negs_files: %w", err)
	}

	for start := 0; start < len(doc.Trades); start += batchSize {
		end := min(start+batchSize, len(doc.Trades))
		if err := copyTrades(tx, fileID, session, start, doc.Trades[start:end]); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("copy trades %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return fileID, nil
}

// copyTrades runs one COPY statement. offset is the index of trades[0] in the
// document; line_no is the 1-based line of the trade in the source file.
func copyTrades(tx *sql.Tx, fileID int64, session time.Time, offset int, trades []negs.Trade) error {
	stmt, err := tx.Prepare(pq.CopyIn("negs_trades", tradeCopyColumns()...))
	if err != nil {
		return err
	}

	for i, t := range trades {
		args := append([]any{fileID, session, offset + i + 2}, t.Row(negs.LayoutExtended)...)
		if _, err := stmt.Exec(args...); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// HasDocument checks if a document was already ingested for the session and broker.
func (r *negsRepository) HasDocument(sessionDate time.Time, userCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM negs_files WHERE session_date = $1 AND user_code = $2)`, sessionDate, userCode).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListFiles returns the most recent ingested documents first.
func (r *negsRepository) ListFiles(limit int) ([]models.NegsFile, error) {
	rows, err := r.db.Query(`
		SELECT id, filename, session_date, user_code, layout, trade_count, ingested_at
		FROM negs_files
		ORDER BY session_date DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make([]models.NegsFile, 0)
	for rows.Next() {
		var f models.NegsFile
		if err := rows.Scan(&f.ID, &f.Filename, &f.SessionDate, &f.UserCode, &f.Layout, &f.TradeCount, &f.IngestedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetAggregateByTicker returns max price and max daily volume for a ticker.
func (r *negsRepository) GetAggregateByTicker(ticker string, startDate *time.Time, endDate *time.Time) (*models.Aggregate, error) {
	var agg models.Aggregate
	agg.Ticker = ticker

	// $1 is always ticker. Subsequent placeholders depend on provided dates.
	conditions := "codigo_negociacao = $1"
	var args []interface{}
	args = append(args, ticker)
	if startDate != nil {
		placeholder := len(args) + 1
		conditions += fmt.Sprintf(" AND session_date >= $%d", placeholder)
		args = append(args, *startDate)
	}
	if endDate != nil {
		placeholder := len(args) + 1
		conditions += fmt.Sprintf(" AND session_date <= $%d", placeholder)
		args = append(args, *endDate)
	}

	query := fmt.Sprintf(`
		WITH daily AS (
			SELECT session_date, SUM(quantidade_negocio) AS daily_volume
			FROM negs_trades
			WHERE %s
			GROUP BY session_date
		)
		SELECT
			(SELECT MAX(preco_negocio) FROM negs_trades WHERE %s) AS max_price,
			(SELECT MAX(daily_volume) FROM daily) AS max_volume
	`, conditions, conditions)

	var maxPrice decimal.NullDecimal
	var maxVolume sql.NullInt64

	err := r.db.QueryRow(query, args...).Scan(&maxPrice, &maxVolume)
	if err != nil {
		return nil, err
	}

	// If both are NULL, there is no data for this ticker/date range.
	if !maxPrice.Valid && !maxVolume.Valid {
		return nil, nil
	}

	if maxPrice.Valid {
		agg.MaxRangeValue = maxPrice.Decimal
	}
	if maxVolume.Valid {
		agg.MaxDailyVolume = maxVolume.Int64
	}

	return &agg, nil
}

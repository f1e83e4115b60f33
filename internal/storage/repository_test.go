package storage

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/negspulse/internal/negs"
	"github.com/shopspring/decimal"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*negsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &negsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func sampleDocument(trades int) *negs.Document {
	doc := &negs.Document{
		Layout: negs.LayoutStandard,
		Header: negs.Header{
			Identification: negs.Identification{FileName: "NEGS0308", FileCode: "NEGS", UserCode: "308"},
			GeneratedOn:    "20240105",
			SessionDate:    "20240104",
		},
		Trailer: negs.Trailer{GeneratedOn: "20240105", TotalRecords: "4"},
		Trades:  []negs.Trade{},
	}
	for i := 0; i < trades; i++ {
		doc.Trades = append(doc.Trades, negs.Trade{
			Ticker:         "PETR4",
			Quantity:       100,
			Price:          decimal.RequireFromString("150.99"),
			SettlementDays: 3,
		})
	}
	return doc
}

func TestTradeCopyColumns(t *testing.T) {
	cols := tradeCopyColumns()
	if len(cols) != 3+34 {
		t.Fatalf("unexpected column count %d", len(cols))
	}
	if cols[0] != "file_id" || cols[3] != "tipo_registro" || cols[len(cols)-1] != "codigo_bdi" {
		t.Fatalf("unexpected columns: %v", cols)
	}
}

func TestInsertDocument_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO negs_files").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	// 3 trades in batches of 2: two COPY statements, each with row execs and a final flush exec.
	for _, rows := range []int{2, 1} {
		prep := mock.ExpectPrepare("COPY")
		for i := 0; i < rows; i++ {
			prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		}
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	id, err := repo.InsertDocument("NEGS_20240104.txt", sampleDocument(3), 2)
	if err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
	if id != 7 {
		t.Fatalf("id=%d want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertDocument_NoTrades(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO negs_files").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	if _, err := repo.InsertDocument("NEGS.txt", sampleDocument(0), 100); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertDocument_Errors(t *testing.T) {
	cases := []struct {
		name   string
		doc    func() *negs.Document
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "invalid session date",
			doc: func() *negs.Document {
				d := sampleDocument(1)
				d.Header.SessionDate = "2024-01-04"
				return d
			},
			expect: func(sqlmock.Sqlmock) {},
		},
		{
			name: "begin",
			doc:  func() *negs.Document { return sampleDocument(1) },
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "file insert",
			doc:  func() *negs.Document { return sampleDocument(1) },
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("INSERT INTO negs_files").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "row exec",
			doc:  func() *negs.Document { return sampleDocument(1) },
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("INSERT INTO negs_files").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
				prep := mock.ExpectPrepare("COPY")
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final exec",
			doc:  func() *negs.Document { return sampleDocument(1) },
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("INSERT INTO negs_files").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
				prep := mock.ExpectPrepare("COPY")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.expect(mock)

			if _, err := repo.InsertDocument("NEGS.txt", tc.doc(), 10); err == nil {
				t.Fatalf("expected error")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestInsertDocument_AlreadyStored(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// ON CONFLICT DO NOTHING returns no row when another writer stored the key first.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO negs_files .* ON CONFLICT \(session_date, user_code\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.InsertDocument("NEGS_copy.txt", sampleDocument(2), 10)
	if !errors.Is(err, ErrDocumentExists) {
		t.Fatalf("expected ErrDocumentExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceDocument_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM negs_files WHERE session_date = $1 AND user_code = $2")).
		WithArgs(d, "308").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO negs_files").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	prep := mock.ExpectPrepare("COPY")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	id, err := repo.ReplaceDocument("NEGS_20240104.txt", sampleDocument(1), 10)
	if err != nil || id != 9 {
		t.Fatalf("ReplaceDocument: id=%d err=%v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A failed replace must roll back the delete so the stored document survives.
func TestReplaceDocument_RollsBackDelete(t *testing.T) {
	cases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "delete fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM negs_files").WillReturnError(dummyErr{})
			},
		},
		{
			name: "file insert fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM negs_files").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("INSERT INTO negs_files").WillReturnError(dummyErr{})
			},
		},
		{
			name: "copy fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM negs_files").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("INSERT INTO negs_files").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
				prep := mock.ExpectPrepare("COPY")
				prep.ExpectExec().WillReturnError(errors.New("copy failed"))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
			tc.expect(mock)
			mock.ExpectRollback()

			if _, err := repo.ReplaceDocument("NEGS.txt", sampleDocument(1), 10); err == nil {
				t.Fatalf("expected error")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestHasDocument_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM negs_files WHERE session_date = $1 AND user_code = $2)")).
		WithArgs(d, "308").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasDocument(d, "308")
	if err != nil || !ok {
		t.Fatalf("HasDocument: ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListFiles_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "filename", "session_date", "user_code", "layout", "trade_count", "ingested_at"}).
		AddRow(int64(2), "NEGS_b.txt", d, "308", "extended", 10, now).
		AddRow(int64(1), "NEGS_a.txt", d, "120", "standard", 3, now)
	mock.ExpectQuery("SELECT id, filename, session_date").WithArgs(50).WillReturnRows(rows)

	files, err := repo.ListFiles(50)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 || files[0].Layout != "extended" || files[1].TradeCount != 3 {
		t.Fatalf("unexpected files: %+v", files)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetAggregateByTicker_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	selectRegex := regexp.MustCompile(`SELECT\s+\(SELECT MAX\(preco_negocio\) FROM negs_trades WHERE .*\) AS max_price,\s*\(SELECT MAX\(daily_volume\) FROM daily\) AS max_volume`)

	day := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		start     *time.Time
		end       *time.Time
		args      []any
		maxPrice  any
		maxVolume interface{}
	}{
		{name: "no dates", args: []any{"TEST4"}, maxPrice: "12.30", maxVolume: int64(200)},
		{name: "with start", start: &day, args: []any{"TEST4", day}, maxPrice: "9.10", maxVolume: int64(100)},
		{name: "with range", start: &day, end: &day2, args: []any{"TEST4", day, day2}, maxPrice: "10.00", maxVolume: int64(150)},
		{name: "no data (NULLs)", start: &day, end: &day2, args: []any{"TEST4", day, day2}, maxPrice: nil, maxVolume: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"max_price", "max_volume"}).AddRow(tc.maxPrice, tc.maxVolume)
			argMatchers := make([]driver.Value, 0, len(tc.args))
			for _, a := range tc.args {
				argMatchers = append(argMatchers, a)
			}
			mock.ExpectQuery(selectRegex.String()).WithArgs(argMatchers...).WillReturnRows(rows)

			out, err := repo.GetAggregateByTicker("TEST4", tc.start, tc.end)
			if tc.maxPrice == nil && tc.maxVolume == nil {
				if err != nil || out != nil {
					t.Fatalf("want nil,nil got out=%+v err=%v", out, err)
				}
			} else if err != nil || out == nil || !out.MaxRangeValue.Equal(decimal.RequireFromString(tc.maxPrice.(string))) {
				t.Fatalf("unexpected out=%+v err=%v", out, err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestNewNegsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewNegsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/negspulse/config"
	"github.com/guttosm/negspulse/internal/app"
	"github.com/guttosm/negspulse/internal/negs"
	"github.com/guttosm/negspulse/internal/storage"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "negspulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=negspulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "negspulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func fixedLine(width int, fields map[int]string) string {
	b := []byte(strings.Repeat(" ", width))
	for off, v := range fields {
		copy(b[off:], v)
	}
	return string(b)
}

// seedForE2E stores one NEGS document for day: two E2E4 trades, total volume 100, max price 12.00.
func seedForE2E(t *testing.T, db *sql.DB, d time.Time) {
	t.Helper()
	session := d.Format("20060102")
	lines := []string{fixedLine(200, map[int]string{0: "00", 2: "NEGS", 6: "0308", 22: session, 30: session})}
	for _, tr := range []struct{ qty, price string }{{"00000000040", "00000001050"}, {"00000000060", "00000001200"}} {
		lines = append(lines, fixedLine(201, map[int]string{0: "01", 10: "E2E4", 50: tr.qty, 61: tr.price}))
	}
	lines = append(lines, fixedLine(200, map[int]string{0: "99", 30: "000000004"}))

	doc, err := negs.ReadDocument(lines)
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	if _, err := storage.NewNegsRepository(db).InsertDocument("seed.txt", doc, 10); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestAPI_E2E_Aggregate_WithStartDate(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()

	// Point application config to containerized DB
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig.Postgres.Host = host
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig.Postgres.Port = int(p)
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "negspulse"
	config.AppConfig.Postgres.SSLMode = "disable"
	config.AppConfig.Server.RateLimitRPS = 100
	config.AppConfig.Server.RateLimitBurst = 100

	// InitializeApp applies the migrations.
	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	db := openDB(t, dsn)
	defer db.Close()
	day := time.Now().UTC().AddDate(0, 0, -2)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	seedForE2E(t, db, day)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/aggregate?ticker=e2e4&data_inicio="+day.Format("2006-01-02"), nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Ticker         string `json:"ticker"`
		MaxRangeValue  string `json:"max_range_value"`
		MaxDailyVolume int64  `json:"max_daily_volume"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Ticker != "E2E4" || body.MaxRangeValue != "12" || body.MaxDailyVolume != 100 {
		t.Fatalf("unexpected body: %+v", body)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/negs/files", nil))
	var files struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &files); err != nil || w.Code != http.StatusOK || files.Count != 1 {
		t.Fatalf("files: status=%d body=%s", w.Code, w.Body.String())
	}
}

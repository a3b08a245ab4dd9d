package backend

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pengeplan/internal/adapters"
	"pengeplan/internal/config"
	"pengeplan/internal/core"
	"pengeplan/internal/memory"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("expected error for unknown backend")
	}

	got, err := FromAppConfig(&config.Config{
		DataBackend:  "postgres",
		PostgresDSN:  "postgres://localhost/pengeplan",
		AMQPURL:      "amqp://localhost/",
		AMQPExchange: "pengeplan",
		AMQPQueue:    "debts.changed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != PostgresBackend || got.PostgresDSN == "" || got.AMQPQueue != "debts.changed" {
		t.Errorf("got %+v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"memory", Config{Type: MemoryBackend}, ""},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, ""},
		{"sqlite without path", Config{Type: SQLiteBackend}, "SQLite database path"},
		{"postgres without dsn", Config{Type: PostgresBackend}, "Postgres DSN"},
		{"unknown", Config{Type: "sheets"}, "invalid backend type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	seed := `{"debts":[{"id":"d1","creditor":"Bank","principal":1000,"min_payment":100,"interest_rate_apr":5}]}`
	if err := os.WriteFile(filepath.Join(dir, "seed.json"), []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: dir})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := res.Backend.(*memory.Store); !ok {
		t.Fatalf("backend is %T", res.Backend)
	}
	debts, _ := res.Backend.ListDebts(context.Background())
	if len(debts) != 1 || debts[0].ID != "d1" {
		t.Fatalf("debts = %+v", debts)
	}
	if res.Cleanup != nil {
		t.Error("memory backend needs no cleanup")
	}
}

func TestCreateSQLiteBackendWithoutBroker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pengeplan.db")
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: path})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer res.Cleanup()

	if _, ok := res.Backend.(*adapters.EventedStore); !ok {
		t.Fatalf("backend is %T", res.Backend)
	}
	d, err := res.Backend.AddDebt(context.Background(), core.Debt{Creditor: "Bank", Principal: 10, MinPayment: 1})
	if err != nil {
		t.Fatalf("add debt: %v", err)
	}
	if err := res.Backend.DeleteDebt(context.Background(), d.ID); err != nil {
		t.Fatalf("delete debt: %v", err)
	}
}

package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT v FROM kv WHERE k = ?"
		result := dialect.RewriteQuery(query)
		if result != query {
			t.Errorf("RewriteQuery() = %v, want unchanged query", result)
		}
	})

	t.Run("InsertIgnoreKVQuery", func(t *testing.T) {
		result := dialect.InsertIgnoreKVQuery()
		if !strings.Contains(result, "INSERT OR IGNORE") {
			t.Errorf("InsertIgnoreKVQuery() = %v, want INSERT OR IGNORE", result)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "INSERT INTO kv (k, v) VALUES (?, ?)"
		result := dialect.RewriteQuery(query)
		expected := "INSERT INTO kv (k, v) VALUES ($1, $2)"
		if result != expected {
			t.Errorf("RewriteQuery() = %v, want %v", result, expected)
		}
	})

	t.Run("InsertIgnoreKVQuery", func(t *testing.T) {
		result := dialect.InsertIgnoreKVQuery()
		if !strings.Contains(result, "ON CONFLICT (k) DO NOTHING") {
			t.Errorf("InsertIgnoreKVQuery() = %v, want ON CONFLICT DO NOTHING", result)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT v FROM kv WHERE k = ?"
		result := dialect.RewriteQuery(query)
		if result != query {
			t.Errorf("RewriteQuery() = %v, want unchanged query", result)
		}
	})

	t.Run("InsertIgnoreKVQuery", func(t *testing.T) {
		result := dialect.InsertIgnoreKVQuery()
		if !strings.Contains(result, "INSERT IGNORE") {
			t.Errorf("InsertIgnoreKVQuery() = %v, want INSERT IGNORE", result)
		}
	})
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT v FROM kv WHERE k = ?",
			expected: "SELECT v FROM kv WHERE k = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO kv (k, v) VALUES (?, ?)",
			expected: "INSERT INTO kv (k, v) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rewritePlaceholdersToNumbered(tt.query)
			if result != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %v, want %v", result, tt.expected)
			}
		})
	}
}

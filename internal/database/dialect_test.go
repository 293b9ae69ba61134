package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT * FROM users",
			expected: "SELECT * FROM users",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO scores (user_id, score, total) VALUES (?, ?, ?)",
			expected: "INSERT INTO scores (user_id, score, total) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rewritePlaceholdersToNumbered(tt.query)
			if result != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDialectDrivers(t *testing.T) {
	tests := []struct {
		name         string
		dialect      Dialect
		driver       string
		lastInsertID bool
		randomFunc   string
		subdir       string
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", true, "RANDOM()", "sqlite"},
		{"postgres", NewPostgresDialect(), "postgres", false, "RANDOM()", "postgres"},
		{"mysql", NewMySQLDialect(), "mysql", true, "RAND()", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %q, want %q", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
			if got := tt.dialect.RandomFunc(); got != tt.randomFunc {
				t.Errorf("RandomFunc() = %q, want %q", got, tt.randomFunc)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.subdir)
			}
		})
	}
}

func TestPostgresRewrite(t *testing.T) {
	d := NewPostgresDialect()
	got := d.RewriteQuery("UPDATE users SET name = ? WHERE id = ?")
	want := "UPDATE users SET name = $1 WHERE id = $2"
	if got != want {
		t.Errorf("RewriteQuery() = %q, want %q", got, want)
	}
}

func TestMySQLDSNAddsParseTime(t *testing.T) {
	d := NewMySQLDialect()

	got := d.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/scamsavvy"})
	want := "user:pass@tcp(localhost:3306)/scamsavvy?parseTime=true"
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	// Already present: unchanged
	url := "user:pass@tcp(localhost:3306)/scamsavvy?parseTime=true"
	if got := d.DSN(DialectConfig{URL: url}); got != url {
		t.Errorf("DSN() = %q, want %q", got, url)
	}
}

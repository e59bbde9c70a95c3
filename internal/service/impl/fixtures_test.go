package impl

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Karab-o/CareLink/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupStore opens a per-test in-memory sqlite database and migrates the
// schema. Each test gets its own database name so state never leaks between
// tests in the package.
func setupStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	st := store.New(db)
	if err := st.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return st
}

func testAuthStack(t *testing.T) (*AuthServiceImpl, *store.Store) {
	t.Helper()
	st := setupStore(t)
	pw := NewPasswordServiceArgon2id()
	ts := NewTokenServiceHS256(TokenConfig{
		Issuer:     "carelink-test",
		Audience:   "carelink-clients",
		TTL:        time.Hour,
		SigningKey: []byte("fixture-signing-key"),
	})
	return NewAuthServiceImpl(st, pw, ts), st
}

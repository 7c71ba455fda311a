package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/user-auth-be/internal/config"
	"github.com/hongminglow/user-auth-be/internal/storage/memory"
	"github.com/hongminglow/user-auth-be/internal/storage/sqlite"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := openStore(ctx, config.Config{Dialect: config.DialectMemory})
	require.NoError(t, err)
	require.IsType(t, &memory.Store{}, s)
	closeFn()

	s, closeFn, err = openStore(ctx, config.Config{Dialect: config.DialectSQLite, SQLitePath: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	require.IsType(t, &sqlite.Store{}, s)
	closeFn()

	_, _, err = openStore(ctx, config.Config{Dialect: "oracle"})
	require.Error(t, err)
}

package database

import "github.com/gaborage/go-sqlfrag/database/types"

// Re-export database vendor identifiers so callers using the database
// package compile while the single source of truth lives in types.
const (
	MySQL      = types.MySQL
	PostgreSQL = types.PostgreSQL
	Oracle     = types.Oracle
)

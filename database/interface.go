package database

import (
	"github.com/gaborage/go-sqlfrag/database/types"
)

// Interface defines the connection operations supported by the vendor packages.
// The interfaces live in database/types to avoid import cycles.
type Interface = types.Interface

// Querier is the minimal execution surface the Executor runs bound statements on.
type Querier = types.Querier

// Row is a single result row returned by QueryRow.
type Row = types.Row

// Escaper resolves placeholder tokens into SQL literals for inline rendering.
type Escaper = types.Escaper

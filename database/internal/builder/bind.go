package builder

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
)

// placeholderFormat returns the squirrel placeholder format for the vendor.
func placeholderFormat(vendor dbtypes.Vendor) squirrel.PlaceholderFormat {
	switch normalizeVendor(vendor) {
	case dbtypes.PostgreSQL:
		// PostgreSQL uses $1, $2, ... placeholders
		return squirrel.Dollar
	case dbtypes.Oracle:
		// Oracle uses :1, :2, ... placeholders
		return squirrel.Colon
	default:
		return squirrel.Question
	}
}

// Bind converts a fragment template and its accumulated parameters into SQL the vendor's
// driver can prepare. Each token is replaced by the vendor placeholder and its parameter
// is coerced to the token's type. The number of tokens must equal len(params).
func Bind(vendor dbtypes.Vendor, template string, params []any) (query string, args []any, err error) {
	return bind(template, params, usesBackslashEscapes(vendor), placeholderFormat(vendor))
}

// bind replaces tokens with ? and rewrites them with format. A nil format leaves the
// output as squirrel Sqlizer SQL: ? placeholders with literal question marks escaped as ??.
func bind(template string, params []any, backslashEscapes bool, format squirrel.PlaceholderFormat) (query string, args []any, err error) {
	if format != squirrel.Question {
		// squirrel treats ?? as an escaped literal question mark
		template = strings.ReplaceAll(template, "?", "??")
	}

	args = make([]any, 0, len(params))
	var bindErr error
	count := 0

	query = scanTemplate(template, backslashEscapes, func(token string) string {
		if count < len(params) && bindErr == nil {
			v, coerceErr := coerceParam(token, params[count])
			if coerceErr != nil {
				bindErr = fmt.Errorf("parameter %d (%s): %w", count+1, token, coerceErr)
			}
			args = append(args, v)
		}
		count++
		return "?"
	})

	if count != len(params) {
		return "", nil, fmt.Errorf("%w: template has %d placeholders, got %d parameters",
			dbtypes.ErrParamCountMismatch, count, len(params))
	}
	if bindErr != nil {
		return "", nil, bindErr
	}

	if format != nil && format != squirrel.Question {
		query, err = format.ReplacePlaceholders(query)
		if err != nil {
			return "", nil, err
		}
	}
	return query, args, nil
}

// coerceParam converts v to the Go type matching token.
// nil and driver.Valuer results of nil bind as SQL NULL regardless of token.
func coerceParam(token string, v any) (any, error) {
	if isNil(v) {
		return nil, nil
	}
	if _, ok := v.(driver.Valuer); ok {
		resolved, err := resolveValuer(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dbtypes.ErrUnsupportedParam, err)
		}
		if resolved == nil {
			return nil, nil
		}
		v = resolved
	}

	switch token {
	case TokenInt:
		if i, ok := toInt64(v); ok {
			return i, nil
		}
	case TokenFloat:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	default:
		// Drivers bind time values natively.
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
		if s, ok := toText(v); ok {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: %T cannot bind as %s", dbtypes.ErrUnsupportedParam, v, token)
}

package builder

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout renders time values bound through a text token.
const DateTimeLayout = "2006-01-02 15:04:05"

// scanTemplate walks template and replaces every %s, %d and %f token that sits outside
// quoted literals and quoted identifiers with onToken's result. %% outside quotes collapses
// to %. Any other % is copied verbatim.
//
// backslashEscapes enables MySQL-style \' and \" escapes inside quoted strings.
func scanTemplate(template string, backslashEscapes bool, onToken func(token string) string) string {
	if !strings.Contains(template, "%") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template) + 16)

	var quote byte
	for i := 0; i < len(template); i++ {
		c := template[i]

		if quote != 0 {
			b.WriteByte(c)
			switch {
			case c == '\\' && backslashEscapes && quote != '`' && i+1 < len(template):
				i++
				b.WriteByte(template[i])
			case c == quote && i+1 < len(template) && template[i+1] == quote:
				i++
				b.WriteByte(template[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c
			b.WriteByte(c)
		case '%':
			if i+1 < len(template) {
				switch next := template[i+1]; next {
				case '%':
					b.WriteByte('%')
					i++
					continue
				case 's', 'd', 'f':
					b.WriteString(onToken(template[i : i+2]))
					i++
					continue
				}
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// CountPlaceholders returns the number of placeholder tokens outside quoted text,
// reading literals with MySQL escaping rules.
func CountPlaceholders(template string) int {
	return defaultBuilder.CountPlaceholders(template)
}

// CountPlaceholders returns the number of placeholder tokens outside quoted text,
// reading literals with the builder vendor's escaping rules.
func (qb *QueryBuilder) CountPlaceholders(template string) int {
	n := 0
	scanTemplate(template, usesBackslashEscapes(qb.vendor), func(token string) string {
		n++
		return token
	})
	return n
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// resolveValuer unwraps driver.Valuer implementations such as sql.NullString.
func resolveValuer(v any) (any, error) {
	valuer, ok := v.(driver.Valuer)
	if !ok {
		return v, nil
	}
	if isNil(v) {
		return nil, nil
	}
	return valuer.Value()
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	case []byte:
		return toInt64(string(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float())
	case reflect.String:
		return toInt64(rv.String())
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case []byte:
		return toFloat64(string(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case reflect.String:
		return toFloat64(rv.String())
	default:
		return 0, false
	}
}

func toText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case time.Time:
		return x.Format(DateTimeLayout), true
	case bool:
		if x {
			return "1", true
		}
		return "0", true
	case fmt.Stringer:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.String:
		return rv.String(), true
	default:
		return "", false
	}
}

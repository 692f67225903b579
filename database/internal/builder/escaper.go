package builder

import (
	"fmt"
	"strconv"
	"strings"

	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
)

// LiteralEscaper is the default Escaper. It resolves placeholder tokens left to right:
//   - %s renders a single-quoted string literal escaped for the vendor
//   - %d renders an integer; values that are not numeric render as 0
//   - %f renders a float; values that are not numeric render as 0
//   - nil renders NULL for every token type
//
// Missing values render NULL; surplus values are ignored.
type LiteralEscaper struct {
	Vendor dbtypes.Vendor
}

var _ dbtypes.Escaper = LiteralEscaper{}

var (
	mysqlLiteralReplacer = strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`"`, `\"`,
		"\x00", `\0`,
		"\n", `\n`,
		"\r", `\r`,
		"\x1a", `\Z`,
	)
	standardLiteralReplacer = strings.NewReplacer(`'`, `''`)
)

// Interpolate implements dbtypes.Escaper.
func (e LiteralEscaper) Interpolate(template string, values ...any) string {
	next := 0
	return scanTemplate(template, usesBackslashEscapes(e.Vendor), func(token string) string {
		if next >= len(values) {
			next++
			return "NULL"
		}
		v := values[next]
		next++
		return e.literal(token, v)
	})
}

// Quote renders s as a string literal for the escaper's vendor.
func (e LiteralEscaper) Quote(s string) string {
	if usesBackslashEscapes(e.Vendor) {
		return "'" + mysqlLiteralReplacer.Replace(s) + "'"
	}
	return "'" + standardLiteralReplacer.Replace(s) + "'"
}

func (e LiteralEscaper) literal(token string, v any) string {
	v, err := resolveValuer(v)
	if err != nil || isNil(v) {
		return "NULL"
	}

	switch token {
	case TokenInt:
		i, _ := toInt64(v)
		return strconv.FormatInt(i, 10)
	case TokenFloat:
		f, _ := toFloat64(v)
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		s, ok := toText(v)
		if !ok {
			s = fmt.Sprint(v)
		}
		return e.Quote(s)
	}
}

func usesBackslashEscapes(vendor dbtypes.Vendor) bool {
	return normalizeVendor(vendor) == dbtypes.MySQL
}

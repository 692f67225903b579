// Package sqllex holds the lexical rules shared by identifier quoting and filter-key validation.
package sqllex

import "strings"

// OracleReservedWords lists Oracle SQL reserved keywords that must be double-quoted
// when used as identifiers.
//
// Source: Oracle Database SQL Language Reference, "Oracle SQL Reserved Words".
var OracleReservedWords = map[string]struct{}{
	"ACCESS": {}, "ADD": {}, "ALL": {}, "ALTER": {}, "AND": {}, "ANY": {}, "AS": {}, "ASC": {},
	"BEGIN": {}, "BETWEEN": {}, "BY": {}, "CASE": {}, "CHECK": {}, "COLUMN": {}, "COMMENT": {},
	"CONNECT": {}, "CREATE": {}, "CURRENT": {}, "DELETE": {}, "DESC": {}, "DISTINCT": {},
	"DROP": {}, "ELSE": {}, "EXCLUDE": {}, "EXISTS": {}, "FOR": {}, "FROM": {}, "GRANT": {},
	"GROUP": {}, "HAVING": {}, "IN": {}, "INDEX": {}, "INSERT": {}, "INTERSECT": {}, "INTO": {},
	"IS": {}, "LEVEL": {}, "LIKE": {}, "LOCK": {}, "MINUS": {}, "MODE": {}, "NOCOMPRESS": {},
	"NOT": {}, "NULL": {}, "NUMBER": {}, "OF": {}, "ON": {}, "OPTION": {}, "OR": {}, "ORDER": {},
	"ROW": {}, "ROWNUM": {}, "SELECT": {}, "SET": {}, "SHARE": {}, "SIZE": {}, "START": {},
	"TABLE": {}, "THEN": {}, "TO": {}, "TRIGGER": {}, "UNION": {}, "UNIQUE": {}, "UPDATE": {},
	"VALUES": {}, "VIEW": {}, "WHEN": {}, "WHERE": {}, "WITH": {},
}

// IsOracleReservedWord reports whether word is an Oracle reserved keyword, ignoring case.
func IsOracleReservedWord(word string) bool {
	_, exists := OracleReservedWords[strings.ToUpper(word)]
	return exists
}

// IsPlainIdentifier reports whether s is a bare identifier: ASCII letters, digits, _ $ or #,
// not starting with a digit. Plain identifiers never need quoting to be parsed.
func IsPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '$' || c == '#' {
			continue
		}
		return false
	}
	return true
}

// IsQualifiedIdentifier reports whether s is one or more plain identifiers joined by dots,
// such as "created_at" or "p.created_at".
func IsQualifiedIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !IsPlainIdentifier(part) {
			return false
		}
	}
	return true
}

package builder

import "strings"

// LikeEscapeChar is the escape character used in LIKE patterns.
const LikeEscapeChar = `\`

// PatternType decides where wildcards go around an escaped LIKE pattern.
type PatternType string

const (
	PatternPrefix    PatternType = "prefix"
	PatternSuffix    PatternType = "suffix"
	PatternSubstring PatternType = "substring"
	PatternExact     PatternType = "exact"
)

// ParsePatternType maps a loose name onto a PatternType, defaulting to PatternExact.
func ParsePatternType(s string) PatternType {
	switch PatternType(strings.ToLower(s)) {
	case PatternPrefix:
		return PatternPrefix
	case PatternSuffix:
		return PatternSuffix
	case PatternSubstring:
		return PatternSubstring
	default:
		return PatternExact
	}
}

// likeEscaper escapes the escape character before the wildcards so a backslash
// introduced for a wildcard is never escaped again.
var likeEscaper = strings.NewReplacer(
	LikeEscapeChar, LikeEscapeChar+LikeEscapeChar,
	"%", LikeEscapeChar+"%",
	"_", LikeEscapeChar+"_",
)

// EscapeLikeWildcards escapes %, _ and the escape character so raw can be matched literally
// inside a LIKE pattern.
func EscapeLikeWildcards(raw string) string {
	return likeEscaper.Replace(raw)
}

// UnescapeLikeWildcards reverses EscapeLikeWildcards.
// A trailing lone escape character is kept as-is.
func UnescapeLikeWildcards(escaped string) string {
	if !strings.Contains(escaped, LikeEscapeChar) {
		return escaped
	}

	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == LikeEscapeChar[0] && i+1 < len(escaped) {
			i++
		}
		b.WriteByte(escaped[i])
	}
	return b.String()
}

// LikePattern escapes text and places wildcards according to patternType.
// Unknown pattern types match text exactly.
func LikePattern(text string, patternType PatternType) string {
	escaped := EscapeLikeWildcards(text)

	switch patternType {
	case PatternPrefix:
		return escaped + "%"
	case PatternSuffix:
		return "%" + escaped
	case PatternSubstring:
		return "%" + escaped + "%"
	default:
		return escaped
	}
}

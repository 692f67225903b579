package builder

import "sort"

// sortedKeys returns a deterministically ordered slice of keys from the provided map.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package match

import (
	"encoding/json"
	"fmt"
	"io"
)

// Nicknames maps a canonical first name to its accepted alternate spellings,
// e.g. "robert" -> ["bob", "rob"].
type Nicknames map[string][]string

// LoadNicknames decodes a JSON nickname table.
func LoadNicknames(r io.Reader) (Nicknames, error) {
	var n Nicknames
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode nicknames: %w", err)
	}
	return n, nil
}

// firstVariants returns the set containing a first name and its nickname
// expansions. An empty name has no variants.
func firstVariants(first string, nicknames Nicknames) map[string]struct{} {
	variants := make(map[string]struct{})
	if first == "" {
		return variants
	}
	variants[first] = struct{}{}
	for _, v := range nicknames[first] {
		variants[v] = struct{}{}
	}
	return variants
}

package utils

import (
	"strings"
)

var keyReplacer = strings.NewReplacer(",", "", ".", "", "'", "", " ", "_")

// EnNameToKey - normalize *english* area name into all small case with
// underscore, punctuation dropped
func EnNameToKey(str string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(str)))
}

package sqlinline

import (
	"regexp"
	"strings"
	"testing"
)

var markerLine = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func allQueries() map[string]string {
	return map[string]string{
		"QInsertDream":            QInsertDream,
		"QUpdateDream":            QUpdateDream,
		"QSelectDreamByID":        QSelectDreamByID,
		"QSelectLatestDream":      QSelectLatestDream,
		"QDeleteDream":            QDeleteDream,
		"QSelectIntegrationToken": QSelectIntegrationToken,
	}
}

func TestEveryQueryCarriesValidMarker(t *testing.T) {
	for name, query := range allQueries() {
		first := strings.SplitN(strings.TrimSpace(query), "\n", 2)[0]
		if !markerLine.MatchString(strings.TrimSpace(first)) {
			t.Fatalf("%s missing a valid marker line: %q", name, first)
		}
	}
}

func TestMarkersAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for name, query := range allQueries() {
		marker := strings.SplitN(strings.TrimSpace(query), "\n", 2)[0]
		if prev, dup := seen[marker]; dup {
			t.Fatalf("%s and %s share marker %q", prev, name, marker)
		}
		seen[marker] = name
	}
}

package mailauth

import (
	"regexp"
	"strings"
)

// Mechanism is one of the sender-authentication mechanisms whose result can
// appear in an Authentication-Results line.
type Mechanism string

const (
	SPF   Mechanism = "spf"
	DKIM  Mechanism = "dkim"
	DMARC Mechanism = "dmarc"
)

var signalPattern = regexp.MustCompile(`(?i)\b(spf|dkim|dmarc)\s*=\s*([a-zA-Z]+)`)

// ExtractSignals scans candidate lines for "mechanism = result" tokens and
// returns the result per mechanism, normalized to lowercase. Matches are
// visited in document order and the first result seen for a mechanism wins;
// later occurrences are discarded. Mechanisms with no match have no entry.
func ExtractSignals(lines []string) map[Mechanism]string {
	found := make(map[Mechanism]string, 3)
	for _, line := range lines {
		for _, m := range signalPattern.FindAllStringSubmatch(line, -1) {
			mech := Mechanism(strings.ToLower(m[1]))
			if _, seen := found[mech]; !seen {
				found[mech] = strings.ToLower(m[2])
			}
		}
	}
	return found
}

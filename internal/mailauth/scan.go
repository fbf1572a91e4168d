// Package mailauth derives a spoofing verdict from the SPF/DKIM/DMARC results
// that upstream mail systems record in Authentication-Results header lines.
// It trusts those upstream-computed results; no cryptographic verification
// happens here.
package mailauth

import "strings"

const candidatePrefix = "authentication-results"

// CandidateLines returns, in document order, every header line carrying
// upstream authentication results. The block is split on raw line boundaries;
// folded continuation lines are not joined, matching how reported header
// blocks arrive in practice. Also matches Authentication-Results-Original.
func CandidateLines(rawHeaders string) []string {
	var lines []string
	for _, line := range strings.Split(rawHeaders, "\n") {
		if strings.HasPrefix(strings.ToLower(line), candidatePrefix) {
			lines = append(lines, line)
		}
	}
	return lines
}

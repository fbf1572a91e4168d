package mailauth

// Overall is the folded trust verdict across all mechanisms.
type Overall string

const (
	OverallPass    Overall = "pass"
	OverallFail    Overall = "fail"
	OverallUnknown Overall = "unknown"
)

// ResultPass is the only result token that counts toward a passing verdict.
// Everything else upstream emits (fail, softfail, neutral, none, permerror,
// temperror, policy, ...) counts against it.
const ResultPass = "pass"

// Verdict carries the first-seen result per mechanism (nil when the mechanism
// never appeared) plus the folded overall judgment. It is computed once per
// submission and never re-derived.
type Verdict struct {
	SPF     *string `json:"spf"`
	DKIM    *string `json:"dkim"`
	DMARC   *string `json:"dmarc"`
	Overall Overall `json:"overall"`
}

// Resolve folds extracted signals into a single verdict:
//   - no signals at all → unknown
//   - any present result other than "pass" → fail
//   - all present results are "pass" → pass only when all three mechanisms
//     are present; a partial all-pass set is still fail
func Resolve(signals map[Mechanism]string) Verdict {
	v := Verdict{Overall: OverallUnknown}

	if spf, ok := signals[SPF]; ok {
		v.SPF = ptr(spf)
	}
	if dkim, ok := signals[DKIM]; ok {
		v.DKIM = ptr(dkim)
	}
	if dmarc, ok := signals[DMARC]; ok {
		v.DMARC = ptr(dmarc)
	}

	present := 0
	passing := 0
	for _, r := range []*string{v.SPF, v.DKIM, v.DMARC} {
		if r == nil {
			continue
		}
		present++
		if *r == ResultPass {
			passing++
		}
	}

	switch {
	case present == 0:
		v.Overall = OverallUnknown
	case passing < present:
		v.Overall = OverallFail
	case passing == 3:
		v.Overall = OverallPass
	default:
		// All present results pass, but the triplet is incomplete.
		v.Overall = OverallFail
	}

	return v
}

// Evaluate runs the full scan → extract → resolve pipeline over a raw header
// block. It has no failure mode: any input, including empty text, yields a
// defined verdict.
func Evaluate(rawHeaders string) Verdict {
	return Resolve(ExtractSignals(CandidateLines(rawHeaders)))
}

func ptr(s string) *string {
	return &s
}

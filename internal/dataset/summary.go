package dataset

// SiteSummary aggregates the launches of one site.
type SiteSummary struct {
	Site        string  `json:"launch_site" yaml:"launch_site"`
	Launches    int     `json:"launches" yaml:"launches"`
	Successes   int     `json:"successes" yaml:"successes"`
	Failures    int     `json:"failures" yaml:"failures"`
	SuccessRate float64 `json:"success_rate" yaml:"success_rate"`
	MinPayload  float64 `json:"min_payload_kg" yaml:"min_payload_kg"`
	MaxPayload  float64 `json:"max_payload_kg" yaml:"max_payload_kg"`
}

// Summarize groups records by site, in order of first appearance.
func Summarize(records []LaunchRecord) []SiteSummary {
	index := make(map[string]int)
	var out []SiteSummary

	for _, r := range records {
		i, ok := index[r.Site]
		if !ok {
			i = len(out)
			index[r.Site] = i
			out = append(out, SiteSummary{
				Site:       r.Site,
				MinPayload: r.PayloadMass,
				MaxPayload: r.PayloadMass,
			})
		}

		s := &out[i]
		s.Launches++
		if r.Success() {
			s.Successes++
		} else {
			s.Failures++
		}
		s.MinPayload = min(s.MinPayload, r.PayloadMass)
		s.MaxPayload = max(s.MaxPayload, r.PayloadMass)
	}

	for i := range out {
		out[i].SuccessRate = float64(out[i].Successes) / float64(out[i].Launches)
	}
	return out
}

// Total folds site summaries into a single row labelled site.
func Total(site string, summaries []SiteSummary) SiteSummary {
	total := SiteSummary{Site: site}
	for i, s := range summaries {
		total.Launches += s.Launches
		total.Successes += s.Successes
		total.Failures += s.Failures
		if i == 0 {
			total.MinPayload, total.MaxPayload = s.MinPayload, s.MaxPayload
			continue
		}
		total.MinPayload = min(total.MinPayload, s.MinPayload)
		total.MaxPayload = max(total.MaxPayload, s.MaxPayload)
	}
	if total.Launches > 0 {
		total.SuccessRate = float64(total.Successes) / float64(total.Launches)
	}
	return total
}

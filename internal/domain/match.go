package domain

import "strings"

// FirstMatch returns the first business, in input order, able to serve the
// request. The boolean is false when nothing matches; that is a normal
// outcome, not an error.
//
// Matching rules, kept exactly as the directory behaves today:
//   - service must be listed verbatim (case-sensitive),
//   - city comparison is case-folded,
//   - day must be a key of the availability table as given,
//   - hour must appear verbatim under that day.
func FirstMatch(req MatchRequest, businesses []BusinessRecord) (BusinessRecord, bool) {
	for _, biz := range businesses {
		if !contains(biz.Services, req.Service) {
			continue
		}
		if !strings.EqualFold(req.City, biz.City) {
			continue
		}
		hours, ok := biz.Availability[req.Day]
		if !ok {
			continue
		}
		if !contains(hours, req.Hour) {
			continue
		}
		return biz, true
	}
	return BusinessRecord{}, false
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// GenerateQueries derives the ordered list of structured queries tried by
// the legacy search path. The order is significant: earlier queries are
// higher priority. Pure and deterministic.
func GenerateQueries(c types.ParsedCitation) []types.CitationQuery {
	var queries []types.CitationQuery

	if c.CaseName != "" {
		queries = append(queries, types.CitationQuery{CaseName: c.CaseName})
	}

	// Combined citation only when the structured components were recognized.
	if c.IsValid {
		queries = append(queries, types.CitationQuery{
			Citation: fmt.Sprintf("%s %s %s", c.Volume, c.Reporter, c.Page),
		})
	}

	if c.Court != "" {
		queries = append(queries, types.CitationQuery{
			CaseName: c.CaseName,
			Court:    c.Court,
		})
	}

	// Year window of ±1 to absorb filing/decision date drift.
	if c.Year != "" {
		if year, err := strconv.Atoi(c.Year); err == nil {
			queries = append(queries, types.CitationQuery{
				CaseName: c.CaseName,
				YearFrom: year - 1,
				YearTo:   year + 1,
			})
		}
	}

	return queries
}

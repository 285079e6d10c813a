// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation converts free-text legal citations into structured form
// and derives ranked search queries from them.
package citation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// Surface patterns, tried in order from strictest to loosest. Each is a
// variant of "CaseName, Volume Reporter Page (Court Year)".
var (
	// fullCiteRe: name, volume, reporter, page, court and year together in
	// the parenthetical, e.g. "Miller v. McDonald, 944 F.3d 1050 (9th Cir. 2019)".
	fullCiteRe = regexp.MustCompile(`^(.+?),\s+(\d+)\s+([A-Za-z0-9.\s]+?)\s+(\d+)\s*\(([^)]+?)\s+(\d{4})\)`)

	// yearCiteRe: same but a bare year parenthetical, e.g.
	// "Roe v. Wade, 410 U.S. 113 (1973)".
	yearCiteRe = regexp.MustCompile(`^(.+?),\s+(\d+)\s+([A-Za-z0-9.\s]+?)\s+(\d+)\s*\((\d{4})\)`)

	// bareCiteRe: no parenthetical, e.g. "Miller v. McDonald, 944 F.3d 1050".
	// The trailing \b stops the lazy reporter from surrendering a volume
	// token of a multi-word reporter ("F. Supp. 2d") as the page.
	bareCiteRe = regexp.MustCompile(`^(.+?),\s+(\d+)\s+([A-Za-z0-9.\s]+?)\s+(\d+)\b`)

	// noCommaCiteRe: name without the separating comma. Greedy on the name,
	// so case names that themselves contain commas mis-parse here; known
	// limitation, kept for recall.
	noCommaCiteRe = regexp.MustCompile(`^(.+?)\s+(\d+)\s+([A-Za-z0-9.\s]+?)\s+(\d+)\b`)
)

// Parse converts a free-text legal citation into a ParsedCitation. It never
// fails: when no structured pattern matches, the result carries a best-effort
// CaseName and IsValid=false.
func Parse(input string) types.ParsedCitation {
	trimmed := strings.TrimSpace(input)
	c := types.ParsedCitation{FullCitation: trimmed}

	for _, re := range []*regexp.Regexp{fullCiteRe, yearCiteRe, bareCiteRe, noCommaCiteRe} {
		m := re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		c.CaseName = strings.TrimSpace(m[1])
		c.Volume = m[2]
		c.Reporter = strings.TrimSpace(m[3])
		c.Page = m[4]

		switch re {
		case fullCiteRe:
			c.Court = strings.TrimSpace(m[5])
			c.Year = m[6]
		case yearCiteRe:
			c.Year = m[5]
		}

		c.IsValid = true
		return c
	}

	c.CaseName = fallbackCaseName(trimmed)
	return c
}

// fallbackCaseName extracts everything before the first comma or digit. When
// no such boundary exists the whole trimmed input is the case name.
func fallbackCaseName(s string) string {
	cut := len(s)
	for i, r := range s {
		if r == ',' || unicode.IsDigit(r) {
			cut = i
			break
		}
	}

	name := strings.TrimSpace(s[:cut])
	if name == "" {
		return s
	}
	return name
}

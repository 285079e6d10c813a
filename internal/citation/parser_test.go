// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"testing"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.ParsedCitation
	}{
		{
			name:  "full citation with court and year",
			input: "Miller v. McDonald, 944 F.3d 1050 (9th Cir. 2019)",
			want: types.ParsedCitation{
				CaseName: "Miller v. McDonald",
				Volume:   "944",
				Reporter: "F.3d",
				Page:     "1050",
				Court:    "9th Cir.",
				Year:     "2019",
				IsValid:  true,
			},
		},
		{
			name:  "year-only parenthetical",
			input: "Roe v. Wade, 410 U.S. 113 (1973)",
			want: types.ParsedCitation{
				CaseName: "Roe v. Wade",
				Volume:   "410",
				Reporter: "U.S.",
				Page:     "113",
				Year:     "1973",
				IsValid:  true,
			},
		},
		{
			name:  "bare citation without parenthetical",
			input: "Miller v. McDonald, 944 F.3d 1050",
			want: types.ParsedCitation{
				CaseName: "Miller v. McDonald",
				Volume:   "944",
				Reporter: "F.3d",
				Page:     "1050",
				IsValid:  true,
			},
		},
		{
			name:  "no comma between name and citation",
			input: "Miller v. McDonald 944 F.3d 1050",
			want: types.ParsedCitation{
				CaseName: "Miller v. McDonald",
				Volume:   "944",
				Reporter: "F.3d",
				Page:     "1050",
				IsValid:  true,
			},
		},
		{
			name:  "multi-word reporter",
			input: "Smith v. Jones, 123 F. Supp. 2d 456 (S.D.N.Y. 2001)",
			want: types.ParsedCitation{
				CaseName: "Smith v. Jones",
				Volume:   "123",
				Reporter: "F. Supp. 2d",
				Page:     "456",
				Court:    "S.D.N.Y.",
				Year:     "2001",
				IsValid:  true,
			},
		},
		{
			name:  "multi-word reporter without parenthetical",
			input: "Smith v. Jones, 123 F. Supp. 2d 456",
			want: types.ParsedCitation{
				CaseName: "Smith v. Jones",
				Volume:   "123",
				Reporter: "F. Supp. 2d",
				Page:     "456",
				IsValid:  true,
			},
		},
		{
			name:  "multi-word reporter without comma or parenthetical",
			input: "Smith v. Jones 123 F. Supp. 2d 456",
			want: types.ParsedCitation{
				CaseName: "Smith v. Jones",
				Volume:   "123",
				Reporter: "F. Supp. 2d",
				Page:     "456",
				IsValid:  true,
			},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Roe v. Wade, 410 U.S. 113 (1973)  ",
			want: types.ParsedCitation{
				CaseName: "Roe v. Wade",
				Volume:   "410",
				Reporter: "U.S.",
				Page:     "113",
				Year:     "1973",
				IsValid:  true,
			},
		},
		{
			name:  "case name only falls back",
			input: "Miller v. McDonald",
			want: types.ParsedCitation{
				CaseName: "Miller v. McDonald",
				IsValid:  false,
			},
		},
		{
			name:  "name with trailing comma falls back to pre-comma text",
			input: "Miller v. McDonald, something unrecognizable",
			want: types.ParsedCitation{
				CaseName: "Miller v. McDonald",
				IsValid:  false,
			},
		},
		{
			name:  "garbage input keeps whole text as name",
			input: "asdf",
			want: types.ParsedCitation{
				CaseName: "asdf",
				IsValid:  false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)

			if got.CaseName != tt.want.CaseName {
				t.Errorf("CaseName = %q, want %q", got.CaseName, tt.want.CaseName)
			}
			if got.Volume != tt.want.Volume {
				t.Errorf("Volume = %q, want %q", got.Volume, tt.want.Volume)
			}
			if got.Reporter != tt.want.Reporter {
				t.Errorf("Reporter = %q, want %q", got.Reporter, tt.want.Reporter)
			}
			if got.Page != tt.want.Page {
				t.Errorf("Page = %q, want %q", got.Page, tt.want.Page)
			}
			if got.Court != tt.want.Court {
				t.Errorf("Court = %q, want %q", got.Court, tt.want.Court)
			}
			if got.Year != tt.want.Year {
				t.Errorf("Year = %q, want %q", got.Year, tt.want.Year)
			}
			if got.IsValid != tt.want.IsValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.want.IsValid)
			}
		})
	}
}

func TestParsePreservesFullCitation(t *testing.T) {
	input := "Miller v. McDonald, 944 F.3d 1050 (9th Cir. 2019)"
	got := Parse("  " + input + " ")
	if got.FullCitation != input {
		t.Errorf("FullCitation = %q, want trimmed original input", got.FullCitation)
	}
}

func TestParseNeverPanicsOnOddInput(t *testing.T) {
	inputs := []string{"", "   ", ",", "123", "(((", "v.", "944 F.3d"}
	for _, in := range inputs {
		got := Parse(in)
		if got.IsValid {
			t.Errorf("Parse(%q).IsValid = true, want false", in)
		}
	}
}

func TestFallbackCaseName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Miller v. McDonald, junk", "Miller v. McDonald"},
		{"Miller v. McDonald 9", "Miller v. McDonald"},
		{"no boundary here", "no boundary here"},
		{"123 starts with digit", "123 starts with digit"},
	}
	for _, tt := range tests {
		if got := fallbackCaseName(tt.input); got != tt.want {
			t.Errorf("fallbackCaseName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

package chat

import (
	"errors"
	"testing"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Verdict
		wantErr bool
	}{
		{"relevant", "RELEVANT", Relevant, false},
		{"not relevant", "NOT_RELEVANT", NotRelevant, false},
		{"ambiguous", "AMBIGUOUS", Ambiguous, false},
		{"lowercase", "relevant", Relevant, false},
		{"surrounding whitespace", "  AMBIGUOUS\n", Ambiguous, false},
		{"quoted", `"NOT_RELEVANT"`, NotRelevant, false},
		{"trailing period", "RELEVANT.", Relevant, false},
		{"empty", "", 0, true},
		{"prose answer", "The documents are relevant.", 0, true},
		{"unknown token", "MAYBE", 0, true},
		{"boolean", "true", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVerdict(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedVerdict) {
					t.Fatalf("ParseVerdict(%q) error = %v, want ErrMalformedVerdict", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVerdict(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVerdict(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestVerdictString(t *testing.T) {
	if Relevant.String() != "RELEVANT" || NotRelevant.String() != "NOT_RELEVANT" || Ambiguous.String() != "AMBIGUOUS" {
		t.Error("verdict string forms do not round-trip the wire values")
	}
	if Verdict(9).String() != "Verdict(9)" {
		t.Errorf("out-of-range verdict string = %q", Verdict(9).String())
	}
}

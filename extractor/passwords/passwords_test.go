package passwords

import (
	"testing"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/stretchr/testify/assert"
)

func fullProfile() common.CustomerProfile {
	return common.CustomerProfile{
		NameParts:     []string{"Ahmed", "Hassan"},
		PhoneNumber:   "050 123 4567",
		DateOfBirth:   "15/03/1980",
		CardLastFours: []string{"1234"},
	}
}

func TestCandidates_BirthYearPhoneRanksFirst(t *testing.T) {
	candidates := Candidates(fullProfile())

	assert.NotEmpty(t, candidates)
	assert.Equal(t, "19804567", candidates[0])
}

func TestCandidates_Deterministic(t *testing.T) {
	first := Candidates(fullProfile())
	second := Candidates(fullProfile())

	assert.Equal(t, first, second)
}

func TestCandidates_NoDuplicates(t *testing.T) {
	candidates := Candidates(fullProfile())

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		_, dup := seen[c]
		assert.False(t, dup, "duplicate candidate %q", c)
		seen[c] = struct{}{}
	}
}

func TestCandidates_NoEmptyEntries(t *testing.T) {
	for _, c := range Candidates(fullProfile()) {
		assert.NotEmpty(t, c)
	}
}

func TestCandidates_NameAndPhoneVariants(t *testing.T) {
	candidates := Candidates(fullProfile())

	assert.Contains(t, candidates, "ahmed4567")
	assert.Contains(t, candidates, "Ahmed4567")
	assert.Contains(t, candidates, "4567ahmed")
	assert.Contains(t, candidates, "hassan15031980")
}

func TestCandidates_CardDayMonth(t *testing.T) {
	// Digit-only dob is 15031980; trailing day-month pair of an
	// 8-digit rendering comes from positions 6:8 and 4:6.
	candidates := Candidates(fullProfile())

	assert.Contains(t, candidates, "12348019")
}

func TestCandidates_BareIdentifiersPresent(t *testing.T) {
	candidates := Candidates(fullProfile())

	assert.Contains(t, candidates, "0501234567")
	assert.Contains(t, candidates, "4567")
	assert.Contains(t, candidates, "1980")
	assert.Contains(t, candidates, "80")
	assert.Contains(t, candidates, "AHMED")
}

func TestCandidates_EmptyProfile(t *testing.T) {
	candidates := Candidates(common.CustomerProfile{})

	assert.Empty(t, candidates)
}

func TestCandidates_MalformedProfileDoesNotPanic(t *testing.T) {
	candidates := Candidates(common.CustomerProfile{
		NameParts:     []string{"", "  ", "Lina"},
		PhoneNumber:   "abc",
		DateOfBirth:   "unknown",
		CardLastFours: []string{" "},
	})

	// Only the name-derived rules can contribute here.
	assert.Contains(t, candidates, "lina")
	assert.Contains(t, candidates, "Lina")
}

func TestBirthYear(t *testing.T) {
	tests := []struct {
		dob      string
		expected int
		ok       bool
	}{
		{"1980-03-15", 1980, true},
		{"15/03/1980", 1980, true},
		{"15031980", 1980, true},
		{"born in 1975", 1975, true},
		{"", 0, false},
		{"soon", 0, false},
	}

	for _, test := range tests {
		year, ok := birthYear(test.dob)
		assert.Equal(t, test.ok, ok, "birthYear(%q)", test.dob)
		if test.ok {
			assert.Equal(t, test.expected, year, "birthYear(%q)", test.dob)
		}
	}
}

package interpretquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "headache", query: "headache", want: "headaches and head pain"},
		{name: "case insensitive", query: "Terrible HEADACHE since Monday", want: "headaches and head pain"},
		{name: "sleep", query: "I can't sleep at night", want: "sleep difficulties and insomnia"},
		{name: "stomach wins over digestion", query: "stomach and digestion problems", want: "stomach discomfort and indigestion"},
		{name: "digestion alone", query: "slow digestion", want: "digestive issues"},
		{name: "sore throat wins over cold", query: "sore throat from a cold", want: "sore throat and throat irritation"},
		{name: "migraine before headache", query: "migraine headache", want: "migraines and recurring head pain"},
		{name: "no keyword", query: "feeling off", want: DefaultCondition},
		{name: "empty query", query: "", want: DefaultCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.query))
		})
	}
}

func TestTable_OrderIsTieBreak(t *testing.T) {
	table := Table()

	index := func(keyword string) int {
		for i, r := range table {
			if r.Keyword == keyword {
				return i
			}
		}
		return -1
	}

	assert.Less(t, index("stomach"), index("digestion"))
	assert.Less(t, index("sore throat"), index("throat"))
	assert.Less(t, index("migraine"), index("headache"))
}

func TestTable_ReturnsCopy(t *testing.T) {
	table := Table()
	table[0].Phrase = "changed"
	assert.NotEqual(t, "changed", Table()[0].Phrase)
}

func TestInterpret_AlwaysReturnsPhrase(t *testing.T) {
	for _, r := range Table() {
		assert.Equal(t, r.Phrase, Interpret(r.Keyword), "keyword %q must resolve to its own phrase or an earlier one", r.Keyword)
	}
}

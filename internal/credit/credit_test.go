// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   Credit
		wantOK bool
	}{
		{
			name:   "second line",
			line:   "Amazing Grace\nJohn Newton, 1779",
			want:   Credit{Author: "John Newton", Year: "1779"},
			wantOK: true,
		},
		{
			name:   "after closing curly quote",
			line:   "“Amazing Grace”Words: John Newton, 1779",
			want:   Credit{Author: "John Newton", Year: "1779"},
			wantOK: true,
		},
		{
			name:   "after last straight quote",
			line:   `"Be Thou My Vision"Irish; translated Eleanor Hull, 1912`,
			want:   Credit{Author: "Irish, Eleanor Hull", Year: "1912"},
			wantOK: true,
		},
		{
			name:   "no year",
			line:   "Title\nLowell Mason",
			want:   Credit{Author: "Lowell Mason"},
			wantOK: true,
		},
		{
			name:   "redundant punctuation",
			line:   "Title\nJohn Smith.,, 1850",
			want:   Credit{Author: "John Smith", Year: "1850"},
			wantOK: true,
		},
		{
			name:   "arranger fragment",
			line:   "Title\nWalter Smith (v5-7)Music arrgd by: Ann Lee, 1900",
			want:   Credit{Author: "Walter Smith, Ann Lee", Year: "1900"},
			wantOK: true,
		},
		{
			name:   "ampersand entity",
			line:   "Title\nAnn Lee &amp; Joan Poe",
			want:   Credit{Author: "Ann Lee & Joan Poe"},
			wantOK: true,
		},
		{
			name:   "leaked type prefix",
			line:   "Title\nSB 12",
			want:   Credit{},
			wantOK: false,
		},
		{
			name:   "leaked prefix discards year",
			line:   "Title\nPH hymnal, 1990",
			want:   Credit{},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestExtract_OverridesTakePrecedence(t *testing.T) {
	want := map[string]Credit{
		"“From the Depths My Prayer Ascendeth Ethelbert W. Bullinger, 1877":    {"Ethelbert W. Bullinger", "1877"},
		"“By Babel’s Streams We Sat and WeptWilliam B. Bradbury, 1853":         {"William B. Bradbury", "1853"},
		"“With All My Heart Will I RecordLouis Bourgeois, 1543":                {"Louis Bourgeois", "1543"},
		"“To God My Earnest Voice I RaiseLowell Mason, 1824":                   {"Lowell Mason", "1824"},
		"“Father, Again in Jesus’ Name We MeetJames Langran, 1862":             {"James Langran", "1862"},
		"\"The Ends of all the Earth Shall Hear“Composed by: William H. Doane": {"William H. Doane", ""},
		"“I Sought the Lord, and Afterward I KnewJean Silbelius, 1865-1957":    {"Jean Silbelius", "1957"},
	}
	assert.Len(t, Overrides, len(want))

	for line, c := range want {
		got, ok := Extract(line)
		assert.True(t, ok, line)
		assert.Equal(t, c, got, line)
	}

	// The heuristic alone gets this one wrong, which is why it is tabled.
	line := "“With All My Heart Will I RecordLouis Bourgeois, 1543"
	assert.NotEqual(t, want[line], Heuristic.Handle(line))
}

func TestExtractWith_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		Literal("x", Credit{Author: "first"}),
		Literal("x", Credit{Author: "second"}),
		Heuristic,
	}
	got, ok := ExtractWith(rules, "x")
	assert.True(t, ok)
	assert.Equal(t, "first", got.Author)

	got, ok = ExtractWith(nil, "anything")
	assert.True(t, ok)
	assert.Equal(t, Credit{}, got)
}

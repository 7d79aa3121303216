package river

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Difficulty
		wantErr string
	}{
		{
			name:  "full class name",
			input: "Class III",
			want:  DifficultyClassIII,
		},
		{
			name:  "numeral only",
			input: "IV",
			want:  DifficultyClassIV,
		},
		{
			name:  "lower case",
			input: "class v",
			want:  DifficultyClassV,
		},
		{
			name:  "empty means unknown",
			input: "",
			want:  DifficultyUnknown,
		},
		{
			name:    "unknown class",
			input:   "Class VII",
			wantErr: "unknown difficulty class",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDifficulty(tc.input)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNaturalKey(t *testing.T) {
	assert.Equal(t, "gauley river|west virginia", NaturalKey("Gauley River", "West Virginia"))
	assert.Equal(t,
		NaturalKey("Gauley River", "West Virginia"),
		NaturalKey("  gauley river  ", "WEST VIRGINIA"),
		"natural keys ignore case and surrounding whitespace")
}

func TestRiver_Validate(t *testing.T) {
	valid := func() River {
		return River{
			Name:     "Gauley River",
			Location: "West Virginia",
		}
	}

	tests := []struct {
		name    string
		modify  func(r *River)
		wantErr string
	}{
		{
			name:   "minimal river is valid",
			modify: func(r *River) {},
		},
		{
			name:    "name is required",
			modify:  func(r *River) { r.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "location is required",
			modify:  func(r *River) { r.Location = "" },
			wantErr: "location is required",
		},
		{
			name: "rating above range",
			modify: func(r *River) {
				rating := int64(6)
				r.PersonalRating = &rating
			},
			wantErr: "must be at most 5",
		},
		{
			name: "flow minimum above maximum",
			modify: func(r *River) {
				min, max := int64(2800), int64(800)
				r.TypicalFlowMin = &min
				r.TypicalFlowMax = &max
			},
			wantErr: "typical flow minimum 2800 exceeds maximum 800",
		},
		{
			name: "flow range in order",
			modify: func(r *River) {
				min, max := int64(800), int64(2800)
				r.TypicalFlowMin = &min
				r.TypicalFlowMax = &max
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.modify(&r)
			err := r.Validate()
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

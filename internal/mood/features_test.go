package mood

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		name         string
		energy       string
		danceability string
		valence      string
		want         FeatureVector
		wantKind     InputErrorKind
		wantField    string
	}{
		{
			name:   "valid integers",
			energy: "7", danceability: "8", valence: "6",
			want: FeatureVector{Energy: 7, Danceability: 8, Valence: 6},
		},
		{
			name:   "inclusive bounds",
			energy: "1", danceability: "10", valence: "1.0",
			want: FeatureVector{Energy: 1, Danceability: 10, Valence: 1},
		},
		{
			name:   "decimals and whitespace",
			energy: " 5.5 ", danceability: "2.25", valence: "9.99",
			want: FeatureVector{Energy: 5.5, Danceability: 2.25, Valence: 9.99},
		},
		{
			name:   "energy above range",
			energy: "11", danceability: "5", valence: "5",
			wantKind: OutOfRange, wantField: "energy",
		},
		{
			name:   "valence below range",
			energy: "5", danceability: "5", valence: "0.99",
			wantKind: OutOfRange, wantField: "valence",
		},
		{
			name:   "negative",
			energy: "5", danceability: "-3", valence: "5",
			wantKind: OutOfRange, wantField: "danceability",
		},
		{
			name:   "non numeric",
			energy: "abc", danceability: "5", valence: "5",
			wantKind: NonNumeric, wantField: "energy",
		},
		{
			name:   "empty",
			energy: "5", danceability: "", valence: "5",
			wantKind: NonNumeric, wantField: "danceability",
		},
		{
			name:   "NaN",
			energy: "5", danceability: "5", valence: "NaN",
			wantKind: NonNumeric, wantField: "valence",
		},
		{
			name:   "infinity",
			energy: "+Inf", danceability: "5", valence: "5",
			wantKind: NonNumeric, wantField: "energy",
		},
		{
			name:   "non numeric wins over out of range",
			energy: "42", danceability: "x", valence: "5",
			wantKind: NonNumeric, wantField: "danceability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFeatures(tt.energy, tt.danceability, tt.valence)
			if tt.wantKind == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr), "error %v is not *InvalidInputError", err)
			assert.Equal(t, tt.wantKind, inputErr.Kind)
			assert.Equal(t, tt.wantField, inputErr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, FeatureVector{}, got)
		})
	}
}

func TestInputErrorKindString(t *testing.T) {
	assert.Equal(t, "non-numeric", NonNumeric.String())
	assert.Equal(t, "out of range", OutOfRange.String())
	assert.Equal(t, "unknown", InputErrorKind(0).String())
}

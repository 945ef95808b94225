package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize(&Preferences{PreferredGenres: []int{28}}))

	s := Summarize(enabled([]int{28, 999999}, []int{}))
	require.NotNil(t, s)
	assert.True(t, s.IsActive)
	assert.Equal(t, 2, s.PreferredCount)
	assert.Equal(t, []string{"Action"}, s.PreferredNames)
	assert.Equal(t, 0, s.ExcludedCount)
	assert.Equal(t, []string{}, s.ExcludedNames)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name       string
		prefs      *Preferences
		wantActive bool
		wantMsg    string
	}{
		{"nil", nil, false, "No filters applied"},
		{"disabled", &Preferences{PreferredGenres: []int{28}}, false, "No filters applied"},
		{"enabled without lists", enabled(nil, nil), true, "Filtering active"},
		{"one preferred", enabled([]int{28}, nil), true, "Filtering active: 1 preferred genre"},
		{"two preferred", enabled([]int{28, 12}, nil), true, "Filtering active: 2 preferred genres"},
		{"one excluded", enabled(nil, []int{27}), true, "Filtering active: 1 excluded genre"},
		{"both", enabled([]int{28, 12, 35}, []int{27}), true, "Filtering active: 3 preferred genres, 1 excluded genre"},
		{"unknown ids still counted", enabled([]int{999999}, []int{888888, 777777}), true, "Filtering active: 1 preferred genre, 2 excluded genres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := StatusOf(tt.prefs)
			assert.Equal(t, tt.wantActive, st.IsActive)
			assert.Equal(t, tt.wantMsg, st.Message)
			if tt.wantActive {
				assert.NotNil(t, st.Summary)
			} else {
				assert.Nil(t, st.Summary)
			}
		})
	}
}

package maze

import (
	"encoding/json"
	"testing"

	utils "github.com/minaorangina/dreidel/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	t.Run("only hei and pei are winning symbols", func(t *testing.T) {
		for _, s := range Symbols {
			assert.True(t, s.IsSymbol())
		}
		assert.True(t, Hei.IsWinning())
		assert.True(t, Pei.IsWinning())
		assert.False(t, Nun.IsWinning())
		assert.False(t, Gimel.IsWinning())
		assert.False(t, Start.IsSymbol())
		assert.False(t, End.IsSymbol())
	})

	t.Run("display forms", func(t *testing.T) {
		assert.Equal(t, "Gimel", Gimel.Title())
		assert.Equal(t, "נ", Nun.Glyph())
		assert.Equal(t, "", End.Glyph())
		assert.Equal(t, "label(9)", Label(9).String())
	})

	t.Run("parse", func(t *testing.T) {
		l, err := ParseLabel(" HEI ")
		utils.AssertNoError(t, err)
		assert.Equal(t, Hei, l)

		_, err = ParseLabel("shin")
		utils.AssertErrorIs(t, err, ErrUnknownLabel)

		_, err = ParseSymbol("end")
		utils.AssertErrorIs(t, err, ErrNotSymbol)

		s, err := ParseSymbol("pei")
		utils.AssertNoError(t, err)
		assert.Equal(t, Pei, s)
	})

	t.Run("json uses names", func(t *testing.T) {
		b, err := json.Marshal([]Label{Start, Nun, End})
		require.NoError(t, err)
		assert.JSONEq(t, `["start","nun","end"]`, string(b))

		var got []Label
		require.NoError(t, json.Unmarshal([]byte(`["gimel","pei"]`), &got))
		assert.Equal(t, []Label{Gimel, Pei}, got)

		_, err = json.Marshal(Label(9))
		assert.Error(t, err)
	})
}

func TestParseDifficulty(t *testing.T) {
	tt := []struct {
		in   string
		want Difficulty
	}{
		{"sparse", Sparse},
		{"EASY", Sparse},
		{"medium", Medium},
		{"dense", Dense},
		{"Hard", Dense},
	}
	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDifficulty(tc.in)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, got, tc.want)
		})
	}

	_, err := ParseDifficulty("impossible")
	utils.AssertErrorIs(t, err, ErrUnknownDifficulty)

	var d Difficulty
	require.NoError(t, json.Unmarshal([]byte(`"hard"`), &d))
	assert.Equal(t, Dense, d)

	b, err := json.Marshal(Medium)
	require.NoError(t, err)
	assert.Equal(t, `"medium"`, string(b))
}

package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnIntervals(t *testing.T) {
	assert.Equal(t, 1000*time.Millisecond, Easy.SpawnInterval())
	assert.Equal(t, 500*time.Millisecond, Medium.SpawnInterval())
	assert.Equal(t, 300*time.Millisecond, Hard.SpawnInterval())
	assert.Equal(t, 100*time.Millisecond, VeryHard.SpawnInterval())
}

func TestParseDifficultyRoundTrips(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDifficulty(" VeryHard ")
	require.NoError(t, err)
	assert.Equal(t, VeryHard, got)

	_, err = ParseDifficulty("nightmare")
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestDifficultyLabels(t *testing.T) {
	assert.Equal(t, "Easy", Easy.Label())
	assert.Equal(t, "Hard", Hard.Label())
	assert.Equal(t, "Very hard", VeryHard.Label())
}

func TestRoundConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultRoundConfig().Validate())
	assert.Error(t, RoundConfig{Difficulty: Hard}.Validate())
	assert.Error(t, RoundConfig{Difficulty: Difficulty(9), Duration: time.Second}.Validate())
}

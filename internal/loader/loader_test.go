package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jengzang/trajectory-classifier/internal/classification"
	"github.com/jengzang/trajectory-classifier/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	in := "3 2 0 0 0 10 0 5\n1 4 4 9\n0\n"
	set, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	want := models.ParsedSet{
		DeclaredCount: 3,
		Trajectories: []models.ParsedTrajectory{
			{ID: 0, DeclaredSamples: 2, Samples: []models.Sample{{X: 0, Y: 0, T: 0}, {X: 10, Y: 0, T: 5}}},
			{ID: 1, DeclaredSamples: 1, Samples: []models.Sample{{X: 4, Y: 4, T: 9}}},
			{ID: 2, DeclaredSamples: 0, Samples: []models.Sample{}},
		},
	}
	assert.Equal(t, want, set)

	e, err := classification.Load(set)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Len())
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"non integer count", "two"},
		{"truncated trajectory list", "2 1 0 0 0"},
		{"truncated sample", "1 2 0 0 0 5 5"},
		{"non integer coordinate", "1 1 0 x 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadHugeDeclaredCounts(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"trajectory count", "9223372036854775807 1"},
		{"sample count", "1 9223372036854775807 0 0 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadNegativeCounts(t *testing.T) {
	set, err := Read(strings.NewReader("-2 1 0 0 0"))
	require.NoError(t, err)
	assert.Equal(t, -2, set.DeclaredCount)
	_, err = classification.Load(set)
	assert.ErrorIs(t, err, classification.ErrInvalidInput)

	set, err = Read(strings.NewReader("2 1 0 0 0 -1"))
	require.NoError(t, err)
	_, err = classification.Load(set)
	assert.ErrorIs(t, err, classification.ErrInvalidInput)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectories.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 0 0 0 3 4 2"), 0o644))

	set, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, set.Trajectories, 1)
	assert.Len(t, set.Trajectories[0].Samples, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

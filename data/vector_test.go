package data_test

import (
	"testing"

	"collabnet/data"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	a := data.Vector{"a": 1, "b": 1, "not in b": 1}
	b := data.Vector{"a": 2, "b": 2, "not in a": 2}
	assert.Equal(t, data.Vector{"a": 3, "b": 3, "not in b": 1}, a.Add(b))
}

func TestDivide(t *testing.T) {
	a := data.Vector{"a": 2, "b": 2}
	assert.Equal(t, data.Vector{"a": 1, "b": 1}, a.Divide(2))
}

func TestMean(t *testing.T) {
	vs := []data.Vector{
		{"a": 1, "b": 3},
		{"a": 3, "b": 5},
	}
	assert.Equal(t, data.Vector{"a": 2, "b": 4}, data.Mean(vs))
	assert.Equal(t, data.Vector{}, data.Mean(nil))
}

func TestAlbumYear(t *testing.T) {
	year, ok := data.Album{ReleaseDate: "1999-04-01"}.Year()
	assert.True(t, ok)
	assert.Equal(t, 1999, year)

	year, ok = data.Album{ReleaseDate: "2003"}.Year()
	assert.True(t, ok)
	assert.Equal(t, 2003, year)

	_, ok = data.Album{ReleaseDate: "03"}.Year()
	assert.False(t, ok)

	_, ok = data.Album{}.Year()
	assert.False(t, ok)
}

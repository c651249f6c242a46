package scan

import (
	"fmt"
	"testing"

	"collabnet/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollaborations(opts Options) *collaborations {
	return newCollaborations(data.Artist{SpotifyID: "id-A", Name: "A"}, opts.withDefaults())
}

func collabNames(c *collaborations) []string {
	var names []string
	for _, co := range c.Collaborators() {
		names = append(names, co.name)
	}
	return names
}

func TestIngestIgnoresSoloTracks(t *testing.T) {
	c := newTestCollaborations(Options{})

	c.Ingest(track("t1", "T1", 0, "A"), "img")
	c.Ingest(data.Track{SpotifyID: "t2", Name: "T2"}, "img")

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Collaborators())
}

func TestIngestExcludesMainArtist(t *testing.T) {
	c := newTestCollaborations(Options{})

	c.Ingest(track("t1", "T1", 0, "A", "B"), "img")

	assert.Equal(t, []string{"B"}, collabNames(c))
}

func TestIngestAccumulatesRepeatMentions(t *testing.T) {
	c := newTestCollaborations(Options{})

	tr := track("t1", "T1", 0, "A", "B")
	c.Ingest(tr, "img1")
	c.Ingest(tr, "img2")

	// Two mentions, but still one collaborator key.
	require.Equal(t, 1, c.Len())
	assert.Equal(t, []TrackMention{
		{Name: "T1", Image: "img1"},
		{Name: "T1", Image: "img2"},
	}, c.Collaborators()[0].mentions)
}

func TestIngestCapAdmitsNoNewKeys(t *testing.T) {
	c := newTestCollaborations(Options{MaxCollaborators: 2})

	c.Ingest(track("t1", "T1", 0, "A", "B"), "img")
	c.Ingest(track("t2", "T2", 0, "A", "C"), "img")
	c.Ingest(track("t3", "T3", 0, "A", "D"), "img")
	// An admitted key keeps accumulating after the cap is reached.
	c.Ingest(track("t4", "T4", 0, "A", "B"), "img")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"B", "C"}, collabNames(c))
	assert.Len(t, c.Collaborators()[0].mentions, 2)
}

func TestIngestCapBoundsDistinctKeys(t *testing.T) {
	c := newTestCollaborations(Options{MaxCollaborators: 5})

	for i := 0; i < 100; i++ {
		c.Ingest(track("t", "T", 0, "A", fmt.Sprintf("C%d", i)), "img")
	}

	assert.Equal(t, 5, c.Len())
}

func TestIngestNameKeyingCollapsesSameName(t *testing.T) {
	c := newTestCollaborations(Options{})

	c.Ingest(data.Track{SpotifyID: "t1", Name: "T1", Artists: []data.Artist{
		{SpotifyID: "id-A", Name: "A"},
		{SpotifyID: "id-B1", Name: "B"},
	}}, "img")
	c.Ingest(data.Track{SpotifyID: "t2", Name: "T2", Artists: []data.Artist{
		{SpotifyID: "id-A", Name: "A"},
		{SpotifyID: "id-B2", Name: "B"},
	}}, "img")

	require.Equal(t, 1, c.Len())
	assert.Len(t, c.Collaborators()[0].mentions, 2)
}

func TestIngestIDKeyingKeepsSameNameApart(t *testing.T) {
	c := newTestCollaborations(Options{KeyByID: true})

	c.Ingest(data.Track{SpotifyID: "t1", Name: "T1", Artists: []data.Artist{
		{SpotifyID: "id-A", Name: "A"},
		{SpotifyID: "id-B1", Name: "B"},
	}}, "img")
	c.Ingest(data.Track{SpotifyID: "t2", Name: "T2", Artists: []data.Artist{
		{SpotifyID: "id-A", Name: "A"},
		{SpotifyID: "id-B2", Name: "B"},
	}}, "img")

	require.Equal(t, 2, c.Len())
	collaborators := c.Collaborators()
	assert.Equal(t, "id-B1", collaborators[0].key)
	assert.Equal(t, "id-B2", collaborators[1].key)
	assert.Len(t, collaborators[0].mentions, 1)
	assert.Len(t, collaborators[1].mentions, 1)
}

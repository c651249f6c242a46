package scan

import "collabnet/data"

// collaborations accumulates the capped collaborator map during the walk.
//
// Keys default to display names, so two artists who share a name collapse
// into one collaborator; KeyByID switches to Spotify-id keys, and the graph
// builder disambiguates any shared names. The cap applies to distinct keys
// only: a
// collaborator admitted before the map filled keeps accumulating mentions.
type collaborations struct {
	mainKey string
	keyByID bool
	max     int

	order    []string
	names    map[string]string
	mentions map[string][]TrackMention
}

func newCollaborations(main data.Artist, opts Options) *collaborations {
	c := &collaborations{
		keyByID:  opts.KeyByID,
		max:      opts.MaxCollaborators,
		names:    map[string]string{},
		mentions: map[string][]TrackMention{},
	}
	c.mainKey = c.key(main)
	return c
}

func (c *collaborations) key(artist data.Artist) string {
	if c.keyByID {
		return artist.SpotifyID
	}
	return artist.Name
}

// Ingest records the track's co-credited artists. Tracks with at most one
// contributing artist have no collaborators and are ignored.
func (c *collaborations) Ingest(track data.Track, albumImageURL string) {
	if len(track.Artists) <= 1 {
		return
	}
	for _, artist := range track.Artists {
		key := c.key(artist)
		if key == c.mainKey {
			continue
		}
		if _, admitted := c.mentions[key]; !admitted {
			if len(c.mentions) >= c.max {
				continue
			}
			c.order = append(c.order, key)
			c.names[key] = artist.Name
			c.mentions[key] = nil
		}
		c.mentions[key] = append(c.mentions[key], TrackMention{
			Name:  track.Name,
			Image: albumImageURL,
		})
	}
}

// Len is the number of distinct collaborators admitted so far.
func (c *collaborations) Len() int {
	return len(c.mentions)
}

// collaborator is one admitted collaborator. Under id keying two
// collaborators may share a name while their keys stay distinct.
type collaborator struct {
	key      string
	name     string
	mentions []TrackMention
}

// Collaborators returns the admitted collaborators in discovery order.
func (c *collaborations) Collaborators() []collaborator {
	out := make([]collaborator, len(c.order))
	for i, key := range c.order {
		out[i] = collaborator{key: key, name: c.names[key], mentions: c.mentions[key]}
	}
	return out
}

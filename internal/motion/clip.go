package motion

// TrackType discriminates keyframe payloads.
type TrackType string

const (
	TrackQuaternion TrackType = "quaternion"
	TrackVector     TrackType = "vector"
)

// Track is one animated channel of one bone: a strictly increasing time
// array and a flattened value array (4 floats per sample for quaternion
// tracks, 3 for vector tracks).
type Track struct {
	Name   string    `json:"name"`
	Type   TrackType `json:"type"`
	Times  []float64 `json:"times"`
	Values []float64 `json:"values"`
}

// Stride is the number of values per sample.
func (t *Track) Stride() int {
	if t.Type == TrackQuaternion {
		return 4
	}
	return 3
}

// Sample returns the values at frame i.
func (t *Track) Sample(i int) []float64 {
	s := t.Stride()
	return t.Values[i*s : (i+1)*s]
}

// FrameCount is the number of sampled instants.
func (t *Track) FrameCount() int { return len(t.Times) }

// Clip is a complete synthesized animation: frame-synchronous tracks
// sharing identical sample instants.
type Clip struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Tracks   []Track `json:"tracks"`
}

// TrackByName finds a track by its full target name, or nil.
func (c *Clip) TrackByName(name string) *Track {
	for i := range c.Tracks {
		if c.Tracks[i].Name == name {
			return &c.Tracks[i]
		}
	}
	return nil
}

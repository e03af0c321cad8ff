package model

// PreferredExt is the container format the progressive stream selector
// accepts. There is no fallback to other containers.
const PreferredExt = "mp4"

// StreamFormat is one available encoding of a video. The URL is ephemeral;
// the upstream platform expires it after a limited time window.
type StreamFormat struct {
	Resolution string
	Height     int
	Ext        string
	HasVideo   bool
	HasAudio   bool
	ABR        float64
	URL        string
}

// Progressive reports whether the format carries both audio and video in a
// single stream.
func (f StreamFormat) Progressive() bool {
	return f.HasVideo && f.HasAudio
}

// StreamGroup holds the formats sharing one resolution label.
type StreamGroup struct {
	Resolution string
	Formats    []StreamFormat
}

// StreamGroups groups formats by resolution label while preserving insertion
// order. A plain map cannot be used here: selection tie-breaks depend on the
// order formats were returned by the extractor.
type StreamGroups []StreamGroup

// Add appends f to the group matching its resolution label, creating a new
// group at the tail when the label has not been seen before.
func (g *StreamGroups) Add(f StreamFormat) {
	for i := range *g {
		if (*g)[i].Resolution == f.Resolution {
			(*g)[i].Formats = append((*g)[i].Formats, f)
			return
		}
	}
	*g = append(*g, StreamGroup{Resolution: f.Resolution, Formats: []StreamFormat{f}})
}

// BestProgressive returns the preferred-container format with the greatest
// height, scanning every group in insertion order. Equal heights keep the
// first format encountered. Returns nil when no format qualifies.
func (g StreamGroups) BestProgressive() *StreamFormat {
	var best *StreamFormat
	for i := range g {
		for j := range g[i].Formats {
			f := &g[i].Formats[j]
			if f.Ext != PreferredExt {
				continue
			}
			if best == nil || f.Height > best.Height {
				best = f
			}
		}
	}
	return best
}

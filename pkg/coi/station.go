package coi

import "time"

// Station is a seismic station known by its name.
type Station struct {
	Name string `json:"name"`
}

// Channel is a named channel of a station.
type Channel struct {
	Name        string `json:"name"`
	StationName string `json:"stationName"`
}

// ChannelSegment is a time window of waveform data on a channel.
type ChannelSegment struct {
	Channel Channel   `json:"channel"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// FilterDefinition names a filter applied to a waveform.
type FilterDefinition struct {
	Name string `json:"name"`
}

// WaveformAndFilterDefinition describes the waveform used to make a
// measurement and the filter applied to it.
type WaveformAndFilterDefinition struct {
	Waveform              ChannelSegment    `json:"waveform"`
	FilterDefinition      *FilterDefinition `json:"filterDefinition,omitempty"`
	FilterDefinitionUsage *string           `json:"filterDefinitionUsage,omitempty"`
}

// WithoutFilterUsage returns a copy with the filter usage cleared.
func (w WaveformAndFilterDefinition) WithoutFilterUsage() WaveformAndFilterDefinition {
	res := w
	res.FilterDefinitionUsage = nil
	if w.FilterDefinition != nil {
		res.FilterDefinition = Ptr(*w.FilterDefinition)
	}
	return res
}

// Clone returns a deep copy.
func (w WaveformAndFilterDefinition) Clone() WaveformAndFilterDefinition {
	res := w.WithoutFilterUsage()
	if w.FilterDefinitionUsage != nil {
		res.FilterDefinitionUsage = Ptr(*w.FilterDefinitionUsage)
	}
	return res
}

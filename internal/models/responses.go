package models

// StatusResponse is returned by /api/status
type StatusResponse struct {
	Loaded  bool            `json:"loaded"`
	Source  string          `json:"source"`
	Rows    int             `json:"rows"`
	Columns []string        `json:"columns"`
	Quality []ColumnProfile `json:"quality"`
}

// Indicator is a headline number with its delta sub-value.
// Delta is Value minus Mean.
type Indicator struct {
	Title string  `json:"title"`
	Value float64 `json:"value"`
	Mean  float64 `json:"mean"`
	Delta float64 `json:"delta"`
}

// Frequency is the row count of one category
type Frequency struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// GroupTotal is the summed value of one group
type GroupTotal struct {
	Group string  `json:"group"`
	Total float64 `json:"total"`
}

// ScatterPoint is one record projected onto the GHG vs. cost plot
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
	Label string  `json:"label"`
}

// RenderOutput is everything one render pass produces.
type RenderOutput struct {
	Rows         int            `json:"rows"`
	TotalGHG     Indicator      `json:"total_ghg"`
	TotalCost    Indicator      `json:"total_cost"`
	Scenarios    []Frequency    `json:"scenarios"`
	Alignment    map[string]int `json:"alignment"`
	Initiatives  []Frequency    `json:"initiatives"`
	Scatter      []ScatterPoint `json:"scatter"`
	LocationGHG  []GroupTotal   `json:"location_ghg"`
	Preview      []Record       `json:"preview"`
	PreviewLimit int            `json:"preview_limit"`
}

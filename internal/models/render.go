package models

// RenderOptions are the presentation knobs of the chart renderer
type RenderOptions struct {
	Width               int    `json:"width" validate:"omitempty,gte=100,lte=4000"`
	Height              int    `json:"height" validate:"omitempty,gte=100,lte=4000"`
	Theme               string `json:"theme" validate:"omitempty,oneof=light dark"`
	IncludeOuterPlanets bool   `json:"includeOuterPlanets"`
}

// RenderRequest is the exact payload accepted by the external chart renderer
type RenderRequest struct {
	Planets             []Planet  `json:"planets"`
	Ascendant           Ascendant `json:"ascendant"`
	Width               int       `json:"width"`
	Height              int       `json:"height"`
	Theme               string    `json:"theme"`
	IncludeOuterPlanets bool      `json:"includeOuterPlanets"`
}

// NewRenderRequest builds the renderer payload from an already computed chart
func NewRenderRequest(chart *Chart, opts RenderOptions) RenderRequest {
	width := opts.Width
	if width == 0 {
		width = 800
	}
	height := opts.Height
	if height == 0 {
		height = 600
	}
	theme := opts.Theme
	if theme == "" {
		theme = "light"
	}
	planets := make([]Planet, 0, len(chart.Planets))
	for _, p := range chart.Planets {
		if p.Body.IsOuter() && !opts.IncludeOuterPlanets {
			continue
		}
		planets = append(planets, p)
	}
	return RenderRequest{
		Planets:             planets,
		Ascendant:           chart.Ascendant,
		Width:               width,
		Height:              height,
		Theme:               theme,
		IncludeOuterPlanets: opts.IncludeOuterPlanets,
	}
}

package models

// DivisionalRequest asks for one varga chart of a birth
type DivisionalRequest struct {
	ChartRequest
	Chart string `json:"chart" validate:"required"`
}

// RenderInputRequest asks for the renderer payload of a birth
type RenderInputRequest struct {
	ChartRequest
	Options RenderOptions `json:"options"`
}

// TokenRequest carries API client credentials
type TokenRequest struct {
	ClientID     string `json:"clientId" validate:"required"`
	ClientSecret string `json:"clientSecret" validate:"required"`
}

// TokenResponse is the issued bearer token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

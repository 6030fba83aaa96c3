package model

type AuthClaims struct {
	Subject string
	Type    string
	TokenID string
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

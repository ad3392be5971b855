package model

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// IdentityToken is issued by the social-login provider after the user signs
// in. Its ID is the provider's stable subject for the person, independent of
// which social account they connected.
type IdentityToken struct {
	ID string `json:"id"`
}

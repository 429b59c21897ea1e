package dto

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	IsSeller    bool   `json:"is_seller"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

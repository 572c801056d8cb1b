package entity

// UserInfo is the directory view of a user, used to enrich notifications.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// ClientInfo is the directory view of a customer.
type ClientInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

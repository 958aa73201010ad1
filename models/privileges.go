package models

// PrivilegesInfo describes the authenticated user as reported by the server.
type PrivilegesInfo struct {
	UserID       string   `json:"user_id"`
	FullName     string   `json:"full_name,omitempty"`
	DefaultGroup string   `json:"defaultGroup,omitempty"`
	Roles        []string `json:"roles"`
}

// Anonymous reports whether the server did not identify the user.
func (p *PrivilegesInfo) Anonymous() bool {
	return p == nil || p.UserID == "" || p.UserID == "anonymous"
}

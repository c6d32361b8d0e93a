package domain

import "strings"

// Principal is the authenticated caller as carried by the access token.
type Principal struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// HasRole compares case-insensitively; an empty role never matches.
func (p Principal) HasRole(role string) bool {
	role = strings.TrimSpace(role)
	if role == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(p.Role), role)
}

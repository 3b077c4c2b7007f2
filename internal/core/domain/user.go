package domain

import "strings"

// FederatedIDPrefix is prepended to the verified email to form the id of an
// OAuth-backed user, so repeated logins resolve to the same record.
const FederatedIDPrefix = "oauth-"

// User models an authenticated actor in the system.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"username"`
	IsAdmin     bool   `json:"is_admin"`
}

// FederatedUserID derives the stable user id for a verified email.
func FederatedUserID(email string) string {
	return FederatedIDPrefix + email
}

// FallbackDisplayName returns name, or the local part of email when name is blank.
func FallbackDisplayName(email, name string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

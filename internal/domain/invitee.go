package domain

import "strings"

// Invitee is an ad-hoc, not-yet-registered participant entered by free text
// on the booking form.
// swagger:model Invitee
type Invitee struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Complete reports whether the invitee carries enough identity to count as a
// distinct participant: a non-blank name plus at least one contact channel.
// An incomplete invitee never counts, not even partially.
func (i Invitee) Complete() bool {
	if strings.TrimSpace(i.FullName) == "" {
		return false
	}
	return strings.TrimSpace(i.Phone) != "" || strings.TrimSpace(i.Email) != ""
}

package domain

// Organization is a roster of user emails joined by invite code.
type Organization struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	InviteCode string   `json:"inviteCode"`
	Members    []string `json:"members"`
}

// MembersExcluding returns organization members minus the given email,
// preserving roster order. Used when listing teammates as candidates so a
// user never sees themself.
func (o Organization) MembersExcluding(email string) []string {
	result := make([]string, 0, len(o.Members))
	for _, member := range o.Members {
		if SameEmail(member, email) {
			continue
		}
		result = append(result, member)
	}
	return result
}

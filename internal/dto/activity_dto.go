package dto

// ActivityResponse is one entry of the activity listing.
// Participants is a count only; identities are never exposed.
// @Description Activity with its live participant count
type ActivityResponse struct {
	Description     string `json:"description" example:"Learn strategies and compete in chess tournaments"`
	Schedule        string `json:"schedule" example:"Fridays, 3:30 PM - 5:00 PM"`
	MaxParticipants int    `json:"max_participants" example:"12"`
	Participants    int64  `json:"participants" example:"2"`
}

// ActivityListResponse maps activity name to its listing entry
type ActivityListResponse map[string]ActivityResponse

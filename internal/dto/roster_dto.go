package dto

import "fmt"

// RosterRequest identifies the (activity, student) pair of a roster change.
// The name comes from the route, so only the email query parameter is required.
type RosterRequest struct {
	ActivityName string `uri:"name"`
	Email        string `form:"email" binding:"required"`
}

// RosterResponse confirms a roster change
// @Description Confirmation of a signup or unregister
type RosterResponse struct {
	Message      string `json:"message" example:"Signed up new@mergington.edu for Chess Club"`
	ActivityName string `json:"-"`
	Email        string `json:"-"`
}

// NewSignupResponse builds the confirmation returned after a signup
func NewSignupResponse(activityName, email string) *RosterResponse {
	return &RosterResponse{
		Message:      fmt.Sprintf("Signed up %s for %s", email, activityName),
		ActivityName: activityName,
		Email:        email,
	}
}

// NewUnregisterResponse builds the confirmation returned after an unregister
func NewUnregisterResponse(activityName, email string) *RosterResponse {
	return &RosterResponse{
		Message:      fmt.Sprintf("Unregistered %s from %s", email, activityName),
		ActivityName: activityName,
		Email:        email,
	}
}

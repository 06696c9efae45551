package dto

type TrackViewRequest struct {
	JobID            string `json:"job_id"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
	Source           string `json:"source"`
}

type SetPreferenceRequest struct {
	JobID          string `json:"job_id"`
	PreferenceType string `json:"preference_type"`
}

package models

import "time"

// Profile is a classroom owned by exactly one account
type Profile struct {
	ID           int64                  `json:"id"`
	AccountID    int64                  `json:"accountId"`
	Name         string                 `json:"name"`
	Location     *string                `json:"location"`
	Latitude     *float64               `json:"latitude"`
	Longitude    *float64               `json:"longitude"`
	ClassSize    *int                   `json:"classSize"`
	Interests    []string               `json:"interests"`
	Availability map[string]interface{} `json:"availability"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// ProfileUpdate carries a partial profile update; nil fields are left untouched
type ProfileUpdate struct {
	Name         *string
	Location     *string
	Latitude     *float64
	Longitude    *float64
	ClassSize    *int
	Interests    *[]string
	Availability *map[string]interface{}
}

// IsEmpty reports whether the update changes nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Location == nil && u.Latitude == nil && u.Longitude == nil &&
		u.ClassSize == nil && u.Interests == nil && u.Availability == nil
}

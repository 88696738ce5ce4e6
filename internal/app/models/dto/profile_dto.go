package dto

// CreateProfileRequest creates a classroom profile
type CreateProfileRequest struct {
	Name         string                 `json:"name" binding:"required,notblank,max=120"`
	Location     *string                `json:"location" binding:"omitempty,max=255"`
	Latitude     *float64               `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64               `json:"longitude" binding:"omitempty,min=-180,max=180"`
	ClassSize    *int                   `json:"class_size" binding:"omitempty,min=1"`
	Interests    []string               `json:"interests"`
	Availability map[string]interface{} `json:"availability"`
}

// UpdateProfileRequest is a partial classroom update; absent fields are unchanged
type UpdateProfileRequest struct {
	Name         *string                 `json:"name" binding:"omitempty,notblank,max=120"`
	Location     *string                 `json:"location" binding:"omitempty,max=255"`
	Latitude     *float64                `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64                `json:"longitude" binding:"omitempty,min=-180,max=180"`
	ClassSize    *int                    `json:"class_size" binding:"omitempty,min=1"`
	Interests    *[]string               `json:"interests"`
	Availability *map[string]interface{} `json:"availability"`
}

// ProfileResponse represents a classroom profile
type ProfileResponse struct {
	ID           int64                  `json:"id"`
	AccountID    int64                  `json:"account_id"`
	Name         string                 `json:"name"`
	Location     *string                `json:"location"`
	Latitude     *float64               `json:"latitude"`
	Longitude    *float64               `json:"longitude"`
	ClassSize    *int                   `json:"class_size"`
	Interests    []string               `json:"interests"`
	Availability map[string]interface{} `json:"availability"`
	CreatedAt    string                 `json:"created_at"`
}

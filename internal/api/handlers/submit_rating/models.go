package submit_rating

// SubmitRatingRequest HTTP request model
type SubmitRatingRequest struct {
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment,omitempty"`
}

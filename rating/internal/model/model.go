package model

import "time"

type ArticleRating struct {
	ArticleID int       `json:"article_id" db:"article_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SetRatingRequest treats zero values as absent, so "required" rejects 0.
type SetRatingRequest struct {
	ArticleID int `json:"article_id" validate:"required"`
	Rating    int `json:"rating" validate:"required,min=1,max=5"`
}

type GetRatingResponse struct {
	Rating int `json:"rating"`
}

type SetRatingResponse struct {
	Rating  int  `json:"rating"`
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

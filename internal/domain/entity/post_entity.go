package entity

import "time"

// Post is a board entry owned by an Account. Deleting the owner deletes it.
type Post struct {
	ID                   int64     `json:"id" db:"id"`
	Heading              string    `json:"heading" db:"heading"`
	Description          string    `json:"description" db:"description"`
	RegistrationTimePost time.Time `json:"registration_time_post" db:"registration_time_post"`
	UserID               int64     `json:"user_id" db:"user_id"`
}

// PostPatch carries validated post fields. A nil field was not supplied.
type PostPatch struct {
	Heading     *string
	Description *string
	UserID      *int64
}

// Apply overwrites the fields set in p.
func (p PostPatch) Apply(post *Post) {
	if p.Heading != nil {
		post.Heading = *p.Heading
	}
	if p.Description != nil {
		post.Description = *p.Description
	}
	if p.UserID != nil {
		post.UserID = *p.UserID
	}
}

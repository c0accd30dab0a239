package repository

// Messages reported to clients by every repository implementation.
const (
	MsgAccountNotFound = "user not found"
	MsgAccountExists   = "user already exists"
	MsgPostNotFound    = "post not found"
	MsgPostOwnerGone   = "post error: user does not exist"
	MsgPostConflict    = "post error"
)

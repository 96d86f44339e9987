package service

import "errors"

var (
	ErrInternal                     = errors.New("internal server error")
	ErrProfileNotFound              = errors.New("profile not found")
	ErrPostNotFound                 = errors.New("post not found")
	ErrNotOwner                     = errors.New("record is not owned by this user")
	ErrCannotFollowSelf             = errors.New("cannot follow yourself")
	ErrEmptyMessage                 = errors.New("message must not be empty")
	ErrEmptyComment                 = errors.New("comment must not be empty")
	ErrTweetTooLong                 = errors.New("tweet must be at most 280 characters")
	ErrFileMustBeImage              = errors.New("file must be an image")
	ErrFailedToUploadPostImageToCDN = errors.New("failed to upload post image to CDN")
)

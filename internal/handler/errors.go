package handler

import (
	"errors"
	"net/http"

	"github.com/MyCircle/circle-service/internal/service"
)

var (
	errNotAuthorized  = errors.New("user is not authorized")
	errInvalidPostID  = errors.New("invalid post ID")
	errInvalidTweetID = errors.New("invalid tweet ID")
)

func statusFromError(err error) int {
	switch err {
	case service.ErrEmptyMessage, service.ErrEmptyComment, service.ErrTweetTooLong,
		service.ErrCannotFollowSelf, service.ErrFileMustBeImage:
		return http.StatusBadRequest
	case service.ErrProfileNotFound, service.ErrPostNotFound:
		return http.StatusNotFound
	case service.ErrNotOwner:
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

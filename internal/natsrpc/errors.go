package natsrpc

import (
	"errors"

	"github.com/syntrixbase/pager/pkg/model"
)

const (
	codeBadRequest           = "BAD_REQUEST"
	codeConflictingArguments = "CONFLICTING_ARGUMENTS"
	codeInvalidCursor        = "INVALID_CURSOR"
	codeInvalidSort          = "INVALID_SORT"
	codeInvalidQuery         = "INVALID_QUERY"
	codeNotFound             = "NOT_FOUND"
	codeCanceled             = "CANCELED"
	codeInternalError        = "INTERNAL_ERROR"
)

func errorReply(err error) Reply {
	code := errorCode(err)
	msg := err.Error()
	switch code {
	case codeInvalidCursor:
		msg = "Invalid cursor"
	case codeInternalError:
		msg = "Failed to paginate"
	}
	return Reply{Error: &ReplyError{Code: code, Message: msg}}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return codeBadRequest
	case errors.Is(err, model.ErrConflictingArguments):
		return codeConflictingArguments
	case errors.Is(err, model.ErrInvalidCursor):
		return codeInvalidCursor
	case errors.Is(err, model.ErrInvalidSort):
		return codeInvalidSort
	case errors.Is(err, model.ErrInvalidQuery):
		return codeInvalidQuery
	case errors.Is(err, model.ErrNotFound):
		return codeNotFound
	case model.IsCanceled(err):
		return codeCanceled
	default:
		return codeInternalError
	}
}

package models

import "errors"

var (
	ErrUnauthorized   = errors.New("missing or invalid credentials")
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("oauth state does not match an authenticated user")
	ErrTokenExchange  = errors.New("provider rejected the authorization code")
	ErrRefreshFailed  = errors.New("provider did not return a new access token")
	ErrNoChannel      = errors.New("account has no channel")
	ErrUploadInit     = errors.New("upload session was rejected")
	ErrUpload         = errors.New("upload did not return a video id")
	ErrStorage        = errors.New("object storage operation failed")
	ErrNotPublishable = errors.New("post is not in a publishable state")
)

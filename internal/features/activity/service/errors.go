package service

import "errors"

var (
	// ErrCdKeyNotFound means the viewer has no redemption record for
	// the requested gift yet.
	ErrCdKeyNotFound = errors.New("cdkey not found for gift")

	// ErrNoInviteCode means the viewer's snapshot carries no invite
	// link, so no share link can be built.
	ErrNoInviteCode = errors.New("no invite code for viewer")
)

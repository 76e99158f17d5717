package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// Максимальные длины для различных полей
	MaxInviteCodeLength = 64
	MinInviteCodeLength = 4
)

// Invite code regex (буквы, цифры, дефисы и подчеркивания)
var inviteCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateInviteCode проверяет код приглашения
func ValidateInviteCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("invite code cannot be empty")
	}
	if len(code) < MinInviteCodeLength {
		return fmt.Errorf("invite code must be at least %d characters long", MinInviteCodeLength)
	}
	if len(code) > MaxInviteCodeLength {
		return fmt.Errorf("invite code must be at most %d characters long", MaxInviteCodeLength)
	}
	if !inviteCodeRegex.MatchString(code) {
		return fmt.Errorf("invite code contains invalid characters")
	}
	return nil
}

// ValidatePositiveID проверяет числовой идентификатор
func ValidatePositiveID(name string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

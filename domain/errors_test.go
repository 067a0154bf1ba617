package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrInvalidCode", err: ErrInvalidCode, expectedMsg: "verification code invalid or expired"},
		{name: "ErrInvalidCredentials", err: ErrInvalidCredentials, expectedMsg: "invalid username or password"},
		{name: "ErrUserBanned", err: ErrUserBanned, expectedMsg: "user account is banned"},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expectedMsg: "user not found"},
		{name: "ErrTokenInvalid", err: ErrTokenInvalid, expectedMsg: "invalid token"},
		{name: "ErrTokenExpired", err: ErrTokenExpired, expectedMsg: "token has expired"},
		{name: "ErrTokenMalformed", err: ErrTokenMalformed, expectedMsg: "malformed token"},
		{name: "ErrForbidden", err: ErrForbidden, expectedMsg: "insufficient role permissions"},
		{name: "ErrNotOwner", err: ErrNotOwner, expectedMsg: "not the resource owner"},
		{name: "ErrNotFound", err: ErrNotFound, expectedMsg: "resource not found"},
		{name: "ErrRoleNotFound", err: ErrRoleNotFound, expectedMsg: "role not found"},
		{name: "ErrDuplicateName", err: ErrDuplicateName, expectedMsg: "name already exists"},
		{name: "ErrCategoryNotEmpty", err: ErrCategoryNotEmpty, expectedMsg: "category still has posts"},
		{name: "ErrInvalidTransition", err: ErrInvalidTransition, expectedMsg: "invalid moderation transition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("got %q, want %q", tt.err.Error(), tt.expectedMsg)
			}
		})
	}
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("refresh: %w", ErrTokenExpired)

	if !errors.Is(wrapped, ErrTokenExpired) {
		t.Error("wrapped error must still match its sentinel")
	}
	if errors.Is(wrapped, ErrTokenInvalid) {
		t.Error("wrapped error must not match a different sentinel")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidCode, ErrInvalidCredentials, ErrUserBanned, ErrUserNotFound,
		ErrTokenInvalid, ErrTokenExpired, ErrTokenMalformed,
		ErrForbidden, ErrNotOwner,
		ErrNotFound, ErrRoleNotFound, ErrDuplicateName, ErrCategoryNotEmpty, ErrInvalidTransition,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}

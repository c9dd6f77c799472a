package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordMeetsPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Str0ng!pass", true},
		{"too short", "S1!a", false},
		{"no uppercase", "str0ng!pass", false},
		{"no lowercase", "STR0NG!PASS", false},
		{"no digit", "Strong!pass", false},
		{"no symbol", "Str0ngpass", false},
		{"all classes exactly eight", "Aa1!Aa1!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordMeetsPolicy(tt.password))
		})
	}
}

func TestAuthErrorStrings(t *testing.T) {
	// Clients render these verbatim; the wording must not drift.
	assert.Equal(t, "Invalid email address format.", ErrInvalidEmailFormat.Error())
	assert.Equal(t, "Invalid email or password. Please try again.", ErrInvalidCredentials.Error())
	assert.Equal(t, "This email is already in use. Try logging in.", ErrEmailInUse.Error())
	assert.Equal(t, "Password does not meet all strength requirements.", ErrWeakPassword.Error())
}

func TestHashTokenIsStable(t *testing.T) {
	a := hashToken("some-refresh-token")
	b := hashToken("some-refresh-token")
	c := hashToken("another-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded sha256
}

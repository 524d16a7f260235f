package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_VerifyEmail(t *testing.T) {
	data := NewVerifyEmailData("FitApp", "Ada", "ada@example.com", "https://api.example.com/api/public/emailverify/tok123")

	subject, text, html, err := Render(VerifyEmail, data)
	require.NoError(t, err)

	assert.Equal(t, "Verify your FitApp email address", subject)
	assert.Contains(t, text, "https://api.example.com/api/public/emailverify/tok123")
	assert.Contains(t, html, `href="https://api.example.com/api/public/emailverify/tok123"`)
	assert.Contains(t, html, "Hi Ada")
}

func TestRender_PasswordReset(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	data := NewPasswordResetData("FitApp", "", "ada@example.com", "N3wPass", WithTime(at), WithCompany("Fit Inc"))

	subject, text, html, err := Render(PasswordReset, data)
	require.NoError(t, err)

	assert.Equal(t, "Your FitApp password was reset", subject)
	assert.Contains(t, text, "Hi there")
	assert.Contains(t, text, "02 January 2026, 03:04")
	assert.Contains(t, html, "<strong>N3wPass</strong>")
	assert.Contains(t, html, "2026 Fit Inc")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", EmailData{})
	assert.Error(t, err)
}

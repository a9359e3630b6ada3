//go:build e2e

package test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlowE2E(t *testing.T) {
	env := SetupTestEnvironment(t)

	testUsername := "bob"
	testEmail := "bob@example.com"
	testPassword := "Password123"

	t.Run("sign_up", func(t *testing.T) {
		body := signUp(t, env.Client, env.BaseURL, testUsername, testEmail, testPassword)

		assert.Equal(t, true, body["success"])
		require.Contains(t, body, "user", "user should be present")

		user := body["user"].(map[string]any)
		assert.Equal(t, testEmail, user["email"])
		assert.Equal(t, testUsername, user["username"])
		assert.Contains(t, user, "_id")
	})

	t.Run("fetch_user_with_session_cookie", func(t *testing.T) {
		resp, err := httpJSON(env.Client, http.MethodGet, env.BaseURL+fetchUserEndpoint, nil)
		require.NoError(t, err)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				t.Errorf(msgFailedToCloseResponseBody, err)
			}
		}()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Contains(t, body, "user")
		assert.Equal(t, testEmail, body["user"].(map[string]any)["email"])
	})

	t.Run("log_out_clears_the_session", func(t *testing.T) {
		resp, err := httpJSON(env.Client, http.MethodPost, env.BaseURL+logOutEndpoint, nil)
		require.NoError(t, err)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				t.Errorf(msgFailedToCloseResponseBody, err)
			}
		}()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// The jar now holds the expired cookie, so fetch-user must fail.
		fetchResp, err := httpJSON(env.Client, http.MethodGet, env.BaseURL+fetchUserEndpoint, nil)
		require.NoError(t, err)
		defer func() {
			if err := fetchResp.Body.Close(); err != nil {
				t.Errorf(msgFailedToCloseResponseBody, err)
			}
		}()
		assert.Equal(t, http.StatusUnauthorized, fetchResp.StatusCode)
	})

	t.Run("log_in_restores_the_session", func(t *testing.T) {
		logInExpect(t, env.Client, env.BaseURL, testEmail, testPassword, http.StatusOK)

		resp, err := httpJSON(env.Client, http.MethodGet, env.BaseURL+fetchUserEndpoint, nil)
		require.NoError(t, err)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				t.Errorf(msgFailedToCloseResponseBody, err)
			}
		}()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong_password_is_rejected", func(t *testing.T) {
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		fresh := &http.Client{Timeout: 5 * time.Second, Jar: jar}

		logInExpect(t, fresh, env.BaseURL, testEmail, "WrongPass999", http.StatusUnauthorized)
	})
}

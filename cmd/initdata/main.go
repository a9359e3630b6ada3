package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	username = flag.String("user", env("USERNAME", "demo"), "Username")
	email    = flag.String("email", env("EMAIL", "demo@example.com"), "User e-mail")
	pass     = flag.String("pass", env("PASSWORD", "Password123"), "User password")
	nNotes   = flag.Int("n", envInt("COUNT", 500), "How many notes to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------

// client carries a cookie jar: the session token lands there on sign-up
// or log-in and rides along on every note creation.
var client *http.Client

func postJSON(path string, body any) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	jar, err := cookiejar.New(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	client = &http.Client{Jar: jar, Timeout: 30 * time.Second}

	fmt.Printf("Init account %s (notes=%d) on %s\n", *email, *nNotes, *baseURL)

	userID, err := ensureUser()
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := createNotes(userID, *nNotes); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// ----------------------------------------------------------------------------
// Step 1 – make sure the user exists -----------------------------------------
func ensureUser() (string, error) {
	signUpPayload := map[string]string{"username": *username, "email": *email, "password": *pass}

	// Try sign-up first …
	if resp, err := postJSON("/sign-up", signUpPayload); err == nil && resp.StatusCode < 300 {
		var r struct {
			User struct {
				ID string `json:"_id"`
			} `json:"user"`
		}
		_ = json.Unmarshal(must(resp.Body), &r)
		fmt.Println("• signed-up new user")
		return r.User.ID, nil
	}

	// … otherwise fall back to log-in.
	resp, err := postJSON("/log-in", map[string]string{"email": *email, "password": *pass})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("log-in failed (%d): %s", resp.StatusCode, must(resp.Body))
	}
	var r struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
	}
	_ = json.Unmarshal(must(resp.Body), &r)
	fmt.Println("• logged-in existing user")
	return r.User.ID, nil
}

// ----------------------------------------------------------------------------
// Step 2 – create notes -------------------------------------------------------
func createNotes(userID string, total int) error {
	for i := 1; i <= total; i++ {
		note := map[string]any{
			"userId":         userID,
			"title":          gofakeit.Sentence(3),
			"noteContent":    gofakeit.Paragraph(1, 3, 40, " "),
			"isFavorite":     gofakeit.Bool() && gofakeit.Bool(),
			"noteIsRecorded": i%7 == 0,
		}
		if i%5 == 0 {
			note["images"] = []string{gofakeit.ImageURL(640, 480)}
		}

		resp, err := postJSON("/notes", note)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("create note %d failed (%d): %s", i, resp.StatusCode, must(resp.Body))
		}
		_ = must(resp.Body)

		if i%50 == 0 || i == total {
			fmt.Printf("  … %d/%d\n", i, total)
		}
	}
	return nil
}

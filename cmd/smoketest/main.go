package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillforge/api/internal/config"
	"github.com/skillforge/api/internal/database"
)

// Seeds a project with a small candidate pool, then exercises the matching
// endpoints against a locally running server.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// 1. Setup Test Data
	userID := uuid.New()
	projectID := uuid.New()
	email := fmt.Sprintf("smoke-%s@example.com", userID.String())

	log.Printf("Seeding database with UserID: %s, ProjectID: %s", userID, projectID)

	_, err = db.Pool().Exec(ctx, `
		INSERT INTO users (id, email, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, userID, email, "Smoke Tester", "client")
	if err != nil {
		log.Fatalf("Failed to insert user: %v", err)
	}

	_, err = db.Pool().Exec(ctx, `
		INSERT INTO projects (id, owner_id, title, required_skills, budget, duration_days, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'open', NOW(), NOW())
	`, projectID, userID, "Smoke Test Project", []string{"go", "postgres", "react"}, 12000.0, 45)
	if err != nil {
		log.Fatalf("Failed to insert project: %v", err)
	}

	skills := [][]string{
		{"go", "postgres"},
		{"react", "typescript"},
		{"go", "react"},
		{"postgres", "sql"},
	}
	for i, s := range skills {
		freelancerID := uuid.New()
		_, err = db.Pool().Exec(ctx, `
			INSERT INTO freelancers (id, user_id, name, skills, rating, completed_projects, is_available, is_verified, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, TRUE, NOW(), NOW())
		`, freelancerID, userID, fmt.Sprintf("Smoke Freelancer %d", i+1), s, 4.0+float64(i)*0.2, 5+i*3)
		if err != nil {
			log.Fatalf("Failed to insert freelancer: %v", err)
		}
	}

	// 2. Mint a dev token the server will accept
	token := mintToken(cfg.JWTSecret, userID, email)

	// 3. Exercise matching endpoints
	base := fmt.Sprintf("http://localhost:%s/api/v1/project/%s/match", cfg.Port, projectID)

	callJSON(token, "POST", base+"/team", map[string]interface{}{})
	callJSON(token, "POST", base+"/recommendations", map[string]interface{}{
		"team_size": 2,
		"limit":     3,
	})
	callJSON(token, "POST", base+"/freelancers", map[string]interface{}{
		"limit": 5,
	})
	callJSON(token, "GET", base+"/existing-teams", nil)

	log.Println("SUCCESS: matching endpoints responded")
}

func mintToken(secret string, userID uuid.UUID, email string) string {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"role":    "client",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func callJSON(token, method, url string, payload interface{}) {
	var body *bytes.Buffer
	if payload != nil {
		jsonBody, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBody)
	} else {
		body = bytes.NewBuffer(nil)
	}

	// Retry loop for server startup
	var resp *http.Response
	var err error
	for i := 0; i < 10; i++ {
		req, _ := http.NewRequest(method, url, bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err = client.Do(req)
		if err == nil {
			break
		}
		log.Printf("Waiting for server... %v", err)
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		log.Fatalf("Request failed after retries: %v", err)
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("%s %s: expected 200 OK, got %d. Body: %s", method, url, resp.StatusCode, buf.String())
	}
	log.Printf("%s %s -> %d (%d bytes)", method, url, resp.StatusCode, buf.Len())
}

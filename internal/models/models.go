package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusMatching   ProjectStatus = "matching"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// ValidProjectStatuses lists the accepted project statuses
var ValidProjectStatuses = map[ProjectStatus]struct{}{
	ProjectStatusDraft:      {},
	ProjectStatusOpen:       {},
	ProjectStatusMatching:   {},
	ProjectStatusInProgress: {},
	ProjectStatusCompleted:  {},
	ProjectStatusCancelled:  {},
}

// User represents an account in the marketplace. Registration, login and
// password handling live in the identity service; this API only reads user
// rows and verifies the tokens it issued.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // client, freelancer, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a client's posted project together with its matching requirement
type Project struct {
	ID              uuid.UUID     `json:"id"`
	OwnerID         uuid.UUID     `json:"owner_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	RequiredSkills  []string      `json:"required_skills"`
	Budget          float64       `json:"budget"`
	DurationDays    int           `json:"duration_days"`
	DesiredTeamSize int           `json:"desired_team_size"` // 0 = let the engine estimate
	Status          ProjectStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Freelancer is a worker profile in the candidate directory
type Freelancer struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Headline          string    `json:"headline,omitempty"`
	Skills            []string  `json:"skills"`
	Rating            float64   `json:"rating"` // 0..5
	CompletedProjects int       `json:"completed_projects"`
	IsAvailable       bool      `json:"is_available"`
	IsVerified        bool      `json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Team is a pre-formed group of freelancers that can be hired as a unit
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LeadID    uuid.UUID `json:"lead_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMember links a freelancer to a pre-formed team
type TeamMember struct {
	TeamID       uuid.UUID `json:"team_id"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	Role         string    `json:"role"`
	AddedAt      time.Time `json:"added_at"`
}

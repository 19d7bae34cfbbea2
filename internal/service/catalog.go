package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"activity-service/internal/domain"
)

// Catalog is the seed data installed on first start
type Catalog struct {
	Activities  []CatalogActivity   `yaml:"activities"`
	Enrollments []CatalogEnrollment `yaml:"enrollments"`
}

// CatalogActivity describes one seeded activity.
// A nil MaxParticipants falls back to domain.DefaultMaxParticipants.
type CatalogActivity struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Schedule        string `yaml:"schedule"`
	MaxParticipants *int   `yaml:"max_participants"`
}

// CatalogEnrollment lists the sample students of one activity
type CatalogEnrollment struct {
	Activity string   `yaml:"activity"`
	Emails   []string `yaml:"emails"`
}

// Capacity returns the configured capacity or the default one
func (a CatalogActivity) Capacity() int {
	if a.MaxParticipants == nil {
		return domain.DefaultMaxParticipants
	}
	return *a.MaxParticipants
}

// Validate checks the catalog before anything is written
func (c *Catalog) Validate() error {
	if len(c.Activities) == 0 {
		return fmt.Errorf("catalog has no activities")
	}

	names := make(map[string]bool, len(c.Activities))
	for _, activity := range c.Activities {
		if strings.TrimSpace(activity.Name) == "" {
			return fmt.Errorf("catalog activity without a name")
		}
		if names[activity.Name] {
			return fmt.Errorf("duplicate catalog activity %q", activity.Name)
		}
		if activity.Capacity() <= 0 {
			return fmt.Errorf("activity %q has non-positive capacity %d", activity.Name, activity.Capacity())
		}
		names[activity.Name] = true
	}

	for _, enrollment := range c.Enrollments {
		if !names[enrollment.Activity] {
			return fmt.Errorf("enrollment references unknown activity %q", enrollment.Activity)
		}
		seen := make(map[string]bool, len(enrollment.Emails))
		for _, raw := range enrollment.Emails {
			email, err := normalizeEmail(raw)
			if err != nil {
				return fmt.Errorf("activity %q: %w", enrollment.Activity, err)
			}
			if seen[email] {
				return fmt.Errorf("activity %q lists %s twice", enrollment.Activity, email)
			}
			seen[email] = true
		}
	}
	return nil
}

// LoadCatalog reads a YAML catalog file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &catalog, nil
}

func capacity(n int) *int {
	return &n
}

// DefaultCatalog returns the built-in school catalog with two sample students per activity
func DefaultCatalog() *Catalog {
	return &Catalog{
		Activities: []CatalogActivity{
			{
				Name:            "Chess Club",
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: capacity(12),
			},
			{
				Name:            "Programming Class",
				Description:     "Learn programming fundamentals and build software projects",
				Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
				MaxParticipants: capacity(20),
			},
			{
				Name:            "Gym Class",
				Description:     "Physical education and sports activities",
				Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
				MaxParticipants: capacity(30),
			},
			{
				Name:            "Soccer Team",
				Description:     "Join the school soccer team and compete in matches",
				Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
				MaxParticipants: capacity(22),
			},
			{
				Name:            "Basketball Team",
				Description:     "Practice and play basketball with the school team",
				Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: capacity(15),
			},
			{
				Name:            "Art Club",
				Description:     "Explore your creativity through painting and drawing",
				Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
				MaxParticipants: capacity(15),
			},
			{
				Name:            "Drama Club",
				Description:     "Act, direct, and produce plays and performances",
				Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
				MaxParticipants: capacity(20),
			},
			{
				Name:            "Math Club",
				Description:     "Solve challenging problems and participate in math competitions",
				Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
				MaxParticipants: capacity(10),
			},
			{
				Name:            "Debate Team",
				Description:     "Develop public speaking and argumentation skills",
				Schedule:        "Fridays, 4:00 PM - 5:30 PM",
				MaxParticipants: capacity(12),
			},
		},
		Enrollments: []CatalogEnrollment{
			{Activity: "Chess Club", Emails: []string{"michael@mergington.edu", "daniel@mergington.edu"}},
			{Activity: "Programming Class", Emails: []string{"emma@mergington.edu", "sophia@mergington.edu"}},
			{Activity: "Gym Class", Emails: []string{"john@mergington.edu", "olivia@mergington.edu"}},
			{Activity: "Soccer Team", Emails: []string{"liam@mergington.edu", "noah@mergington.edu"}},
			{Activity: "Basketball Team", Emails: []string{"ava@mergington.edu", "mia@mergington.edu"}},
			{Activity: "Art Club", Emails: []string{"amelia@mergington.edu", "harper@mergington.edu"}},
			{Activity: "Drama Club", Emails: []string{"ella@mergington.edu", "scarlett@mergington.edu"}},
			{Activity: "Math Club", Emails: []string{"james@mergington.edu", "benjamin@mergington.edu"}},
			{Activity: "Debate Team", Emails: []string{"charlotte@mergington.edu", "henry@mergington.edu"}},
		},
	}
}

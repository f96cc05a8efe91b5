package seeder

import "github.com/google/uuid"

// Defaults returns the seeders that build the demo resume for userID.
func Defaults(userID uuid.UUID) []Seeder {
	return []Seeder{
		DemoResumeSeeder{UserID: userID},
		DemoSectionsSeeder{UserID: userID},
	}
}

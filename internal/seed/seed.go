// Package seed populates a development database with fake users, follow
// edges, and statuses.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"microblog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run inserts userCount activated users, a random follow graph, and
// statusCount statuses per user. All seeded accounts share the password
// "password" for local testing.
func Run(db *gorm.DB, userCount, statusCount int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		users = append(users, models.User{
			Name:      fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			Email:     gofakeit.Email(),
			Password:  string(hashed),
			Activated: true,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("Seeded %d users", len(users))

	// Random follow graph: each user follows roughly a third of the others.
	var edges []models.Follow
	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID || rand.Intn(3) != 0 {
				continue
			}
			edges = append(edges, models.Follow{
				FollowerID: follower.ID,
				FollowedID: followed.ID,
			})
		}
	}
	if len(edges) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error; err != nil {
			return fmt.Errorf("failed to seed follow edges: %w", err)
		}
	}
	log.Printf("Seeded %d follow edges", len(edges))

	var statuses []models.Status
	for _, user := range users {
		for i := 0; i < statusCount; i++ {
			content := []rune(gofakeit.SentenceSimple())
			if len(content) > 140 {
				content = content[:140]
			}
			statuses = append(statuses, models.Status{
				Content: string(content),
				UserID:  user.ID,
			})
		}
	}
	if len(statuses) > 0 {
		if err := db.Create(&statuses).Error; err != nil {
			return fmt.Errorf("failed to seed statuses: %w", err)
		}
	}
	log.Printf("Seeded %d statuses", len(statuses))

	return nil
}

// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	// NumExtraPosts is the number of generated posts on top of the
	// fixture set.
	NumExtraPosts int
	ShouldClean   bool
}

// fixturePosts is the canonical demo content for the site. Slugs are
// stable so bookmarked URLs keep working across reseeds.
func fixturePosts() []models.Post {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []models.Post{
		{
			Title:       "The Evolution of Web Design: From Static to Interactive",
			Slug:        "evolution-of-web-design",
			Excerpt:     "Exploring how web design has transformed from simple static pages to dynamic, interactive experiences that engage users in new ways.",
			Content:     "Web design has come a long way since the early days of the internet. When I first started learning web design, I was fascinated by how simple HTML and CSS could create beautiful layouts...",
			Category:    models.CategoryWebDesign,
			ReadTime:    5,
			PublishedAt: day(2024, time.January, 15),
		},
		{
			Title:       "Understanding Kenya's Pre-Colonial Kingdoms",
			Slug:        "kenya-precolonial-kingdoms",
			Excerpt:     "A deep dive into the rich history of Kenya's pre-colonial societies, their governance structures, and cultural practices.",
			Content:     "Kenya's history extends far beyond the colonial period. The region was home to sophisticated kingdoms and communities with complex social structures...",
			Category:    models.CategoryHistory,
			ReadTime:    8,
			PublishedAt: day(2024, time.January, 10),
		},
		{
			Title:       "My Journey Learning React and TypeScript",
			Slug:        "learning-react-typescript",
			Excerpt:     "Sharing my experience diving into modern JavaScript frameworks and why TypeScript changed my approach to development.",
			Content:     "When I first encountered React, I was overwhelmed by the concept of components and state management. Coming from vanilla JavaScript...",
			Category:    models.CategoryTechnology,
			ReadTime:    6,
			PublishedAt: day(2024, time.January, 5),
		},
		{
			Title:       "University Life in Kenya: Balancing Studies and Passion Projects",
			Slug:        "university-life-balance",
			Excerpt:     "Reflections on managing coursework while pursuing personal interests in technology and design.",
			Content:     "Being a university student in Kenya comes with its unique challenges and opportunities. Balancing academic demands with personal projects...",
			Category:    models.CategoryPersonalLife,
			ReadTime:    4,
			PublishedAt: day(2023, time.December, 28),
		},
		{
			Title:       "The Mathematics Behind Beautiful Web Animations",
			Slug:        "mathematics-web-animations",
			Excerpt:     "How mathematical concepts like Bezier curves and easing functions create smooth, natural-feeling animations.",
			Content:     "Mathematics isn't just abstract theory - it's the foundation of beautiful web experiences. When creating animations, understanding the math behind easing functions...",
			Category:    models.CategoryWebDesign,
			ReadTime:    7,
			PublishedAt: day(2023, time.December, 20),
		},
		{
			Title:       "The Rise of AI in Everyday Technology",
			Slug:        "ai-everyday-technology",
			Excerpt:     "Examining how artificial intelligence is becoming integrated into the tools and services we use daily.",
			Content:     "Artificial Intelligence is no longer science fiction - it's becoming an integral part of our daily digital experiences...",
			Category:    models.CategoryTechnology,
			ReadTime:    6,
			PublishedAt: day(2023, time.December, 15),
		},
	}
}

// Seed populates the database with the fixture posts plus optional
// generated filler.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d extra posts...", opts.NumExtraPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear existing data, continuing anyway...")
		}
	}

	created, err := createFixturePosts(db)
	if err != nil {
		return fmt.Errorf("failed to create fixture posts: %w", err)
	}
	log.Printf("%d fixture posts created", created)

	if opts.NumExtraPosts > 0 {
		if err := createGeneratedPosts(db, opts.NumExtraPosts); err != nil {
			return fmt.Errorf("failed to create generated posts: %w", err)
		}
		log.Printf("%d generated posts created", opts.NumExtraPosts)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error
}

// createFixturePosts inserts the fixture set, skipping slugs that
// already exist so reseeding is idempotent.
func createFixturePosts(db *gorm.DB) (int, error) {
	created := 0
	for _, post := range fixturePosts() {
		var count int64
		if err := db.Model(&models.Post{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		post := post
		if err := db.Create(&post).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func createGeneratedPosts(db *gorm.DB, count int) error {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < count; i++ {
		title := strings.TrimSuffix(gofakeit.Sentence(r.Intn(5)+4), ".")
		post := models.Post{
			Title:    title,
			Slug:     fmt.Sprintf("%s-%d", validation.Slugify(title), i),
			Excerpt:  gofakeit.Sentence(r.Intn(10) + 8),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Category: models.Categories[r.Intn(len(models.Categories))],
			ReadTime: r.Intn(8) + 3,
			PublishedAt: time.Now().UTC().
				Add(-time.Duration(r.Intn(365*24)) * time.Hour),
		}
		if err := db.Create(&post).Error; err != nil {
			return err
		}
	}
	return nil
}

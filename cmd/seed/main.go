package main

import (
	"context"
	"log"

	"github.com/editfolio/editfolio-backend/internal/config"
	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/database"
	"github.com/editfolio/editfolio-backend/internal/store"
)

// Seeds a fresh database with starter content so a new deployment has
// something to render: one section, a few skills and services, and the
// default site settings. Existing data is left alone.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGODB_URI is required to seed")
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		log.Fatalf("cannot connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	st := store.NewMongoStore(client.Database(cfg.MongoDB.Database), store.NewLocalNotifier())
	acc := content.NewAccessor(st)

	docs, err := st.List(ctx, content.CollectionSections)
	if err != nil {
		log.Fatalf("cannot read sections: %v", err)
	}
	if len(docs) > 0 {
		log.Printf("database already has %d sections; nothing to do", len(docs))
		return
	}

	sectionID, err := acc.SaveSection(ctx, "Featured Work")
	if err != nil {
		log.Fatalf("seed section: %v", err)
	}
	log.Printf("created section %s", sectionID)

	for _, s := range []content.Skill{
		{Name: "Video Editing", Level: 95},
		{Name: "Color Grading", Level: 85},
		{Name: "Motion Graphics", Level: 75},
	} {
		if _, err := acc.SaveSkill(ctx, s); err != nil {
			log.Fatalf("seed skill %q: %v", s.Name, err)
		}
	}

	for _, s := range []content.ServiceEntry{
		{Title: "Commercial Editing", Description: "Cut-downs, spots and product videos."},
		{Title: "Wedding Films", Description: "Full-day coverage edited into a keepsake film."},
	} {
		if _, err := acc.SaveServiceEntry(ctx, s); err != nil {
			log.Fatalf("seed service %q: %v", s.Title, err)
		}
	}

	if err := acc.SaveSiteSettings(ctx, store.Fields{}); err != nil {
		log.Fatalf("seed settings: %v", err)
	}

	log.Print("seed complete")
}

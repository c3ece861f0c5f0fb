package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-profile-manager/config"
	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/store"
	"github.com/oksasatya/go-profile-manager/pkg/helpers"
)

var demoProfiles = []entity.ProfileDraft{
	{Name: "Ada Lovelace", Email: "ada@example.com", Role: "Engineer", Avatar: "https://i.pravatar.cc/150?u=ada"},
	{Name: "Grace Hopper", Email: "grace@example.com", Role: "Admiral"},
	{Name: "Demo User", Email: "demo@example.com", Role: "Tester"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	rdb := helpers.NewRedisClient(helpers.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB, UseTLS: cfg.RedisUseTLS})
	defer func() { _ = rdb.Close() }()

	kv, closeKV, err := store.Open(ctx, cfg, rdb, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeKV()

	// no simulated latency when seeding
	session := app.NewSession(kv, app.SessionConfig{StorageKey: cfg.StorageKey}, logger)
	defer session.Close()
	session.Profiles.SaveDelay = 0

	st, err := session.Reload()
	if err != nil {
		log.Fatalf("failed to load profiles: %v", err)
	}
	if st.Error != "" {
		log.Fatalf("stored collection unreadable, refusing to overwrite: %s", st.Error)
	}

	existing := make(map[string]bool, len(st.Data))
	for _, p := range st.Data {
		existing[strings.ToLower(p.Email)] = true
	}

	// insert in reverse so the first demo profile ends up on top
	for i := len(demoProfiles) - 1; i >= 0; i-- {
		d := demoProfiles[i]
		if existing[strings.ToLower(d.Email)] {
			fmt.Printf("skip existing profile: email=%s\n", d.Email)
			continue
		}
		p, err := session.Profiles.Create(ctx, d)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", d.Email, err)
		}
		fmt.Printf("seeded profile: id=%s email=%s name=%s\n", p.ID, p.Email, p.Name)
	}
	fmt.Printf("collection %q now holds %d profiles\n", cfg.StorageKey, len(session.Profiles.List()))
}

package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rhpisos/quoting-api/internal/catalog"
	"github.com/rhpisos/quoting-api/internal/config"
	"github.com/rhpisos/quoting-api/internal/kv"
)

// Seeds the key-value store with the default material catalog and the quote
// number counter. Existing entries are left alone unless -force is passed.
func main() {
	force := flag.Bool("force", false, "overwrite existing entries")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	store := kv.NewRedis(client)

	seedCatalog(ctx, store, cfg, *force)
	seedCounter(ctx, store, cfg, *force)

	log.Println("Seeding completed successfully!")
}

func seedCatalog(ctx context.Context, store kv.Store, cfg *config.Config, force bool) {
	if !force {
		if _, ok, err := store.Get(ctx, cfg.CatalogKey); err != nil {
			log.Fatalf("read catalog: %v", err)
		} else if ok {
			log.Printf("catalog already present at %s, skipping (use -force to overwrite)", cfg.CatalogKey)
			return
		}
	}
	log.Println("Seeding catalog...")
	s := catalog.NewStore(ctx, catalog.StoreConfig{KV: store, Key: cfg.CatalogKey, Logger: zerolog.Nop()})
	s.ResetToDefaults(ctx)
	log.Printf("wrote %d materials to %s", len(s.List()), cfg.CatalogKey)
}

func seedCounter(ctx context.Context, store kv.Store, cfg *config.Config, force bool) {
	if !force {
		if _, ok, err := store.Get(ctx, cfg.QuoteNumberKey); err != nil {
			log.Fatalf("read quote number: %v", err)
		} else if ok {
			log.Printf("quote number already present at %s, skipping (use -force to overwrite)", cfg.QuoteNumberKey)
			return
		}
	}
	log.Println("Seeding quote number counter...")
	value := strconv.FormatInt(cfg.QuoteNumberSeed, 10)
	if err := store.Set(ctx, cfg.QuoteNumberKey, []byte(value)); err != nil {
		log.Fatalf("write quote number: %v", err)
	}
	log.Printf("wrote counter %s to %s", value, cfg.QuoteNumberKey)
}

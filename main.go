package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"invoiceradar/config"
	"invoiceradar/dedup"
	"invoiceradar/orchestrator"
	"invoiceradar/sources"
	"invoiceradar/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	dataFile := flag.String("data", "", "corpus file path (overrides DATA_FILE)")
	flag.Parse()

	cfg := config.Load()
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	o := orchestrator.New(cfg, sources.All(cfg), store.NewFileStore(cfg.DataFile))

	ctx := context.Background()
	if mirror := initMirror(ctx, cfg); mirror != nil {
		o.Mirror = mirror
	}
	if announcer := initAnnouncer(cfg); announcer != nil {
		o.Announcer = announcer
		defer announcer.Close()
	}

	log.Printf("Starting crawl: %d sources, corpus at %s (max %d items)",
		len(sources.All(cfg)), cfg.DataFile, cfg.MaxItems)

	if err := o.RunOnce(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Println("=== Run Complete ===")
}

// initMirror returns the optional S3 corpus mirror. Required: S3_BUCKET.
func initMirror(ctx context.Context, cfg config.Config) store.Store {
	if cfg.S3Bucket == "" {
		return nil
	}
	mirror, err := store.NewS3Store(ctx, store.S3Config{
		Bucket:       cfg.S3Bucket,
		Key:          cfg.S3Key,
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 mirror: %v (mirroring disabled)", err)
		return nil
	}
	return mirror
}

// initAnnouncer returns the optional Kafka announcer. Required:
// KAFKA_BROKERS. The Redis bloom guard is itself optional within it.
func initAnnouncer(cfg config.Config) *orchestrator.Announcer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	var bloom *dedup.RedisBloom
	if cfg.RedisAddr != "" {
		var err error
		bloom, err = dedup.NewRedisBloom(dedup.BloomConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Key:      cfg.BloomKey,
			TTL:      cfg.BloomTTL,
		})
		if err != nil {
			log.Printf("Warning: failed to init announce bloom filter: %v (guard disabled)", err)
		}
	}

	announcer, err := orchestrator.NewAnnouncer(cfg.KafkaBrokers, cfg.KafkaTopic, bloom)
	if err != nil {
		log.Printf("Warning: failed to init Kafka announcer: %v (announcing disabled)", err)
		return nil
	}
	return announcer
}

package app

import (
	"github.com/verdantmarket/verdant-backend/internal/clients/gcs"
	"github.com/verdantmarket/verdant-backend/internal/clients/redis"
	"github.com/verdantmarket/verdant-backend/internal/clients/sendgrid"
	"github.com/verdantmarket/verdant-backend/internal/logger"
)

type Clients struct {
	Bucket      gcs.BucketService
	SchemaCache redis.SchemaCache
	Sendgrid    sendgrid.Client
}

// wireClients initializes the optional external clients. Each failure
// is logged and the client left nil; the services treat nil clients as
// disabled features, so a missing bucket or redis never prevents boot.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")
	var c Clients

	bucket, err := gcs.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService", "error", err)
	} else {
		c.Bucket = bucket
	}

	cache, err := redis.NewSchemaCache(log)
	if err != nil {
		log.Warn("Could not init SchemaCache", "error", err)
	} else {
		c.SchemaCache = cache
	}

	sg, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("Could not init Sendgrid client", "error", err)
	} else {
		c.Sendgrid = sg
	}

	return c
}

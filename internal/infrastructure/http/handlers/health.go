package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const probeTimeout = 3 * time.Second

// Probes serves the liveness and readiness endpoints. Liveness only confirms
// the process responds; readiness additionally pings MongoDB and Redis.
type Probes struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewProbes(db *mongo.Database, rdb *redis.Client) *Probes {
	return &Probes{db: db, rdb: rdb}
}

func (p *Probes) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "up"})
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]checkResult `json:"checks"`
}

func (p *Probes) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := map[string]checkResult{
		"mongodb": p.checkMongo(ctx),
		"redis":   p.checkRedis(ctx),
	}

	status, code := "up", http.StatusOK
	for _, r := range checks {
		if r.Status != "up" {
			status, code = "down", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Checks: checks})
}

func (p *Probes) checkMongo(ctx context.Context) checkResult {
	if err := p.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return checkResult{Status: "down", Error: err.Error()}
	}
	return checkResult{Status: "up"}
}

func (p *Probes) checkRedis(ctx context.Context) checkResult {
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return checkResult{Status: "down", Error: err.Error()}
	}
	return checkResult{Status: "up"}
}

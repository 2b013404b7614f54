package config

import (
	"os"
	"strconv"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// PostgresURL selects the document store; empty keeps the in-memory store.
	PostgresURL string

	// RedisAddr selects the change broker; empty keeps the in-process broker.
	RedisAddr string

	// JWTSigningKey verifies bearer tokens carrying the acting user.
	JWTSigningKey string

	// CDRThreshold is the compliance percentage below which a submitted
	// inspection auto-opens a draft CDR.
	CDRThreshold float64

	// ContractorName names the single cleaning contractor monthly penalty
	// statements are issued against.
	ContractorName string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("EVSOPS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	threshold := 70.0
	if raw := os.Getenv("EVSOPS_CDR_THRESHOLD"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = v
		}
	}

	contractor := os.Getenv("EVSOPS_CONTRACTOR_NAME")
	if contractor == "" {
		contractor = "Facility Services Contractor"
	}

	return Server{
		Addr:           addr,
		PostgresURL:    os.Getenv("EVSOPS_POSTGRES_URL"),
		RedisAddr:      os.Getenv("EVSOPS_REDIS_ADDR"),
		JWTSigningKey:  jwtSigningKey,
		CDRThreshold:   threshold,
		ContractorName: contractor,
	}
}

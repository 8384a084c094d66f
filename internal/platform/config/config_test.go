package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "FR", cfg.DefaultRegion)
	assert.Equal(t, 2*time.Second, cfg.Directory.Timeout)
	assert.Contains(t, cfg.DeniedDomains, "yopmail.com")
	assert.Empty(t, cfg.AllowedDomains, "allowlist mode is opt-in")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("IDCHECK_ADDR", ":9000")
	t.Setenv("IDCHECK_DEFAULT_REGION", "BE")
	t.Setenv("IDCHECK_DIRECTORY_TIMEOUT", "750ms")
	t.Setenv("IDCHECK_ALLOWED_DOMAINS", "Hospital.example, clinic.example")
	t.Setenv("IDCHECK_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "BE", cfg.DefaultRegion)
	assert.Equal(t, 750*time.Millisecond, cfg.Directory.Timeout)
	assert.Equal(t, []string{"hospital.example", "clinic.example"}, cfg.AllowedDomains)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestFromEnv_BadDurationFallsBack(t *testing.T) {
	t.Setenv("IDCHECK_DIRECTORY_TIMEOUT", "soon")
	cfg := FromEnv()
	assert.Equal(t, 2*time.Second, cfg.Directory.Timeout)
}

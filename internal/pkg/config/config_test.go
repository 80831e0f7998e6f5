package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8000" || cfg.Mongo.Database != "proton" || cfg.StoreBackend != "mongo" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL() != 60*time.Minute {
		t.Fatalf("ttl = %v", cfg.TokenTTL())
	}
	if cfg.Auth.LoginWindow != 15*time.Minute || cfg.Auth.LoginMaxAttempts != 5 {
		t.Fatalf("unexpected throttle defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.AllowAdminSignup {
		t.Fatalf("admin signup should default to off")
	}
	if !cfg.UsesDefaultSecret() {
		t.Fatalf("expected default secret")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if !errors.Is(err, ErrInsecureSecret) {
		t.Fatalf("err = %v, want ErrInsecureSecret", err)
	}

	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":        "production",
		"JWT_SECRET": "a-real-secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UsesDefaultSecret() {
		t.Fatalf("secret not picked up")
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_BACKEND": "sqlite"}))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestAllowOrigins(t *testing.T) {
	cfg := &Config{CORSAllowOrigins: " https://a.test , ,https://b.test"}
	got := cfg.AllowOrigins()
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("origins = %v", got)
	}
}

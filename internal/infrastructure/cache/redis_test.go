package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), "", 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	if v, err := c.Get(ctx, "k").Result(); err != nil || v != "v" {
		t.Fatalf("GET = %q, %v", v, err)
	}
	if err := Pinger(c)(ctx); err != nil {
		t.Fatalf("Pinger err: %v", err)
	}
}

func TestOpenRedis_WithPassword(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("s3cret")

	if _, err := OpenRedis(s.Addr(), "wrong", 0); err == nil {
		t.Fatal("expected auth error, got nil")
	}
	c, err := OpenRedis(s.Addr(), "s3cret", 0)
	if err != nil {
		t.Fatalf("OpenRedis with password: %v", err)
	}
	_ = c.Close()
}

func TestOpenRedis_Failure(t *testing.T) {
	if _, err := OpenRedis("not-a-real-host:6379", "", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPinger_ReportsOutage(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := OpenRedis(s.Addr(), "", 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	s.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := Pinger(c)(ctx); err == nil {
		t.Fatal("expected ping error after server shutdown")
	}
}

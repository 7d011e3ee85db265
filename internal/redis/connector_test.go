package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/pitch/internal/logger"
)

var testLog = logger.New("error", false)

func fastOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ConnectTimeout: 400 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
	}
}

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), fastOptions(mr.Addr()), testLog)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatal(err)
	}
	mr.CheckGet(t, "k", "v")
}

func TestNewRetriesUntilServerIsUp(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	go func() {
		time.Sleep(60 * time.Millisecond)
		_ = mr.Restart()
	}()

	opts := fastOptions(addr)
	opts.ConnectTimeout = 2 * time.Second
	client, err := New(context.Background(), opts, testLog)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_ = client.Close()
}

func TestNewGivesUp(t *testing.T) {
	start := time.Now()
	_, err := New(context.Background(), fastOptions("127.0.0.1:1"), testLog)
	if err == nil {
		t.Fatal("New() succeeded against a closed port")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("gave up after %v, want about 400ms", elapsed)
	}
}

func TestWithDefaults(t *testing.T) {
	got, err := ConnectOptions{Addr: "x:6379", MaxWait: time.Second}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if got.ConnectTimeout != DefaultConnectOptions.ConnectTimeout || got.MaxWait != time.Second {
		t.Errorf("withDefaults() = %+v", got)
	}

	bad := []ConnectOptions{
		{Addr: "x:6379", PingTimeout: -time.Second},
		{Addr: "x:6379", WarnThreshold: -1},
		{},
	}
	for _, o := range bad {
		if _, err := o.withDefaults(); err == nil {
			t.Errorf("withDefaults(%+v) accepted", o)
		}
	}
}

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		wait, limit, want time.Duration
	}{
		{time.Second, 10 * time.Second, 2 * time.Second},
		{4 * time.Second, 5 * time.Second, 5 * time.Second},
		{5 * time.Second, 5 * time.Second, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := nextBackoff(tt.wait, tt.limit); got != tt.want {
			t.Errorf("nextBackoff(%v, %v) = %v, want %v", tt.wait, tt.limit, got, tt.want)
		}
	}
}

package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.Database.Driver = "sqlite"
	c.Database.DSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	c.Catalog.APIKey = "k"
	c.TextGen.APIKey = "k"
	c.Log.Level = "error"
	return c
}

func TestNewApp_RunAndStop(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestNewApp_UnreachableRedisIsOptional(t *testing.T) {
	c := testConfig(t)
	c.Redis.URL = "redis://127.0.0.1:1/0"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, app.redis)
	app.close(context.Background())
}

func TestNewApp_BadDriver(t *testing.T) {
	c := testConfig(t)
	c.Database.Driver = "mysql"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

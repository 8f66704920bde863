package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denysvitali/dirscope-runtime/pkg/config"
	"github.com/denysvitali/dirscope-runtime/pkg/dirlist"
	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
	"github.com/denysvitali/dirscope-runtime/pkg/homedir"
)

func newTestService(t *testing.T, env homedir.MapEnv) *Service {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/home/alice/Documents", 0755))
	require.NoError(t, afero.WriteFile(mem, "/home/alice/notes.txt", []byte("n"), 0644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(config.Default(), logger, WithEnv(env), WithLister(dirlist.New(mem)))
}

func TestHomeDir(t *testing.T) {
	ctx := context.Background()

	t.Run("resolved", func(t *testing.T) {
		svc := newTestService(t, homedir.MapEnv{"HOME": "/home/alice", "USERPROFILE": `C:\Users\alice`})
		home, err := svc.HomeDir(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/home/alice", home)
	})

	t.Run("unavailable", func(t *testing.T) {
		svc := newTestService(t, homedir.MapEnv{})
		_, err := svc.HomeDir(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, fserr.ErrEnvironmentUnavailable))
	})
}

func TestHomeDir_OrderIgnoresConfig(t *testing.T) {
	v := viper.New()
	v.Set("home.env_vars", []string{"USERPROFILE", "HOME"})
	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := New(cfg, logger, WithEnv(homedir.MapEnv{
		"HOME":        "/home/alice",
		"USERPROFILE": `C:\Users\alice`,
	}))

	home, err := svc.HomeDir(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/home/alice", home)
	assert.Equal(t, []string{"HOME", "USERPROFILE"}, svc.Info().HomeEnvVars)
}

func TestListDir(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, homedir.MapEnv{"HOME": "/home/alice"})

	t.Run("listing", func(t *testing.T) {
		listing, err := svc.ListDir(ctx, "/home/alice")
		require.NoError(t, err)
		assert.Equal(t, dirlist.Listing{
			{Name: "Documents", IsDir: true},
			{Name: "notes.txt", IsDir: false},
		}, listing)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.ListDir(ctx, "/home/bob")
		assert.Equal(t, fserr.DirectoryOpenFailed, fserr.KindOf(err))
	})
}

func TestInfo_TracksLastCall(t *testing.T) {
	svc := newTestService(t, homedir.MapEnv{"HOME": "/home/alice"})
	before := svc.Info()

	time.Sleep(5 * time.Millisecond)
	_, err := svc.ListDir(context.Background(), "/home/alice")
	require.NoError(t, err)

	after := svc.Info()
	assert.Equal(t, before.StartTime, after.StartTime)
	assert.True(t, after.LastCallTime.After(before.LastCallTime))
	assert.Equal(t, []string{"HOME", "USERPROFILE"}, after.HomeEnvVars)
}

func TestConcurrentCalls(t *testing.T) {
	svc := newTestService(t, homedir.MapEnv{"HOME": "/home/alice"})
	want := dirlist.Listing{
		{Name: "Documents", IsDir: true},
		{Name: "notes.txt", IsDir: false},
	}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	homes := make(chan string, workers)
	listings := make(chan dirlist.Listing, workers)

	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			home, err := svc.HomeDir(context.Background())
			errs <- err
			homes <- home
		}()
		go func() {
			defer wg.Done()
			listing, err := svc.ListDir(context.Background(), "/home/alice")
			errs <- err
			listings <- listing
		}()
	}
	wg.Wait()
	close(errs)
	close(homes)
	close(listings)

	for err := range errs {
		assert.NoError(t, err)
	}
	for home := range homes {
		assert.Equal(t, "/home/alice", home)
	}
	for listing := range listings {
		assert.Equal(t, want, listing)
	}
	assert.False(t, svc.Info().LastCallTime.Before(svc.Info().StartTime))
}

func TestSystemStats(t *testing.T) {
	svc := newTestService(t, homedir.MapEnv{})
	stats := svc.SystemStats()
	assert.GreaterOrEqual(t, stats.CPUPercent, 0.0)
}

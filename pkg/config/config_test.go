package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livekit-stage/pkg/config/configtest"
)

func TestConfig_Defaults(t *testing.T) {
	conf, err := NewConfig("", true, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 9, conf.Seats.Count)
	require.Equal(t, 2500*time.Millisecond, conf.Seats.ClaimGrace)
	require.Equal(t, 150*time.Millisecond, conf.Session.AudioPublishDelay)
	require.Equal(t, 20*time.Second, conf.Session.ConnectTimeout)
	require.Equal(t, "error", conf.Logging.ComponentLevels["transport.pion"])
}

func TestConfig_DefaultsKept(t *testing.T) {
	const content = `seats:
  claim_timeout: 3s
session:
  audio_publish_delay: 250ms`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 9, conf.Seats.Count)
	require.Equal(t, 3*time.Second, conf.Seats.ClaimTimeout)
	require.Equal(t, 250*time.Millisecond, conf.Session.AudioPublishDelay)
	require.Equal(t, 20*time.Second, conf.Session.ConnectTimeout)
}

func TestConfig_UnknownKeys(t *testing.T) {
	const content = `unknown: 10
seats:
  count: 4`
	_, err := NewConfig(content, true, nil, nil)
	require.Error(t, err)

	conf, err := NewConfig(content, false, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 4, conf.Seats.Count)
}

func TestConfig_InvalidSeatCount(t *testing.T) {
	_, err := NewConfig("seats:\n  count: -1", true, nil, nil)
	require.ErrorIs(t, err, ErrInvalidSeatCount)
}

func TestConfig_UnmarshalKeys(t *testing.T) {
	conf, err := NewConfig("", true, nil, nil)
	require.NoError(t, err)

	require.NoError(t, conf.unmarshalKeys("key1: secret1"))
	require.Equal(t, "secret1", conf.Keys["key1"])
}

func TestConfig_ValidateKeys(t *testing.T) {
	t.Run("keys required", func(t *testing.T) {
		conf, err := NewConfig("", true, nil, nil)
		require.NoError(t, err)
		require.ErrorIs(t, conf.ValidateKeys(), ErrKeysNotSet)
	})

	t.Run("falls back to credentials", func(t *testing.T) {
		conf, err := NewConfig("development: true\ncredentials:\n  api_key: devkey\n  api_secret: secret", true, nil, nil)
		require.NoError(t, err)
		require.NoError(t, conf.ValidateKeys())
		require.Equal(t, "secret", conf.Keys["devkey"])
	})

	t.Run("key file permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keys.yaml")
		require.NoError(t, os.WriteFile(path, []byte("key1: secret1\n"), 0o644))

		conf, err := NewConfig("key_file: "+path, true, nil, nil)
		require.NoError(t, err)
		require.ErrorIs(t, conf.ValidateKeys(), ErrKeyFileIncorrectPermission)

		require.NoError(t, os.Chmod(path, 0o600))
		require.NoError(t, conf.ValidateKeys())
		require.Equal(t, "secret1", conf.Keys["key1"])
	})
}

func TestGeneratedFlags(t *testing.T) {
	generatedFlags, err := GenerateCLIFlags(nil, false)
	require.NoError(t, err)

	app := cli.NewApp()
	app.Name = "test"
	app.Flags = append(app.Flags, generatedFlags...)

	set := flag.NewFlagSet("test", 0)
	set.String("redis.address", "localhost:6379", "")  // string
	set.Uint64("prometheus.port", 9999, "")            // uint32
	set.Int("seats.count", 5, "")                      // int
	set.Duration("seats.claim_grace", time.Second, "") // duration
	set.Bool("development", true, "")                  // bool

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)

	require.Equal(t, "localhost:6379", conf.Redis.Address)
	require.Equal(t, uint32(9999), conf.Prometheus.Port)
	require.Equal(t, 5, conf.Seats.Count)
	require.Equal(t, time.Second, conf.Seats.ClaimGrace)
	require.True(t, conf.Development)
}

func TestYAMLTags(t *testing.T) {
	require.NoError(t, configtest.CheckYAMLTags(Config{}))
}

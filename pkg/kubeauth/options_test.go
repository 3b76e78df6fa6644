package kubeauth

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	testCases := []struct {
		name          string
		in            Options
		ttl, interval time.Duration
	}{
		{"zero", Options{}, DefaultTTL, DefaultSweepInterval},
		{"negative", Options{TTL: -time.Second, SweepInterval: -time.Minute}, DefaultTTL, DefaultSweepInterval},
		{"custom", Options{TTL: time.Minute, SweepInterval: time.Second}, time.Minute, time.Second},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := newConfig(WithEnv(viper.New()), WithOptions(testCase.in))
			assert.Equal(t, testCase.ttl, cfg.options.TTL)
			assert.Equal(t, testCase.interval, cfg.options.SweepInterval)
		})
	}
}

func TestWithEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/config", []byte("kind: Config\n"), 0o644))

	env := viper.New()
	env.Set(envKubeconfig, "/work/config")
	env.Set(envStrictPermissions, "true")

	cfg := newConfig(WithEnv(env), WithFs(fs))
	assert.Same(t, env, cfg.env)
	assert.True(t, cfg.options.StrictPermissions)

	_, err := newLoader(cfg).Load("")
	assert.ErrorIs(t, err, ErrInsecurePermissions)
}

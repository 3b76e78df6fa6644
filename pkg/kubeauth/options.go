package kubeauth

import (
	"time"

	"github.com/imdario/mergo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"k8s.io/client-go/util/homedir"
	"k8s.io/utils/clock"
)

const (
	// DefaultTTL is how long a resolved bundle stays live in the cache.
	DefaultTTL = time.Hour

	// DefaultSweepInterval is how often the sweeper drops expired bundles.
	DefaultSweepInterval = 2 * DefaultTTL
)

// Environment variables consulted through viper.
const (
	envKubeconfig        = "KUBECONFIG"
	envStrictPermissions = "KUBEAUTH_STRICT_PERMISSIONS"
)

// Options holds the tunables of a Resolver. Zero fields are filled from
// DefaultOptions.
type Options struct {
	TTL           time.Duration // Lifetime of a cached bundle
	SweepInterval time.Duration // Tick of the background sweeper

	// StrictPermissions rejects kubeconfig files that are readable or writable
	// by group or others. Off by default: shared kubeconfigs are common.
	StrictPermissions bool

	// HomeDir is where the default ~/.kube/config is looked up.
	HomeDir string
}

func DefaultOptions() Options {
	return Options{
		TTL:           DefaultTTL,
		SweepInterval: DefaultSweepInterval,
		HomeDir:       homedir.HomeDir(),
	}
}

type config struct {
	options    Options
	fs         afero.Fs
	env        *viper.Viper
	log        logrus.FieldLogger
	clock      clock.WithTicker
	cache      *Cache
	registerer prometheus.Registerer
}

type Option func(*config)

// WithOptions overrides the non-zero fields of DefaultOptions.
func WithOptions(opts Options) Option {
	return func(c *config) { c.options = opts }
}

// WithStrictPermissions turns on StrictPermissions regardless of the Options
// passed before it.
func WithStrictPermissions() Option {
	return func(c *config) { c.options.StrictPermissions = true }
}

// WithFs sets the filesystem used to read kubeconfigs and credential files.
func WithFs(fs afero.Fs) Option {
	return func(c *config) { c.fs = fs }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) { c.log = log }
}

func WithClock(clk clock.WithTicker) Option {
	return func(c *config) { c.clock = clk }
}

// WithCache makes the Resolver share an existing cache instead of owning a
// fresh one.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithEnv replaces the viper instance environment settings are read from.
// KUBECONFIG and KUBEAUTH_STRICT_PERMISSIONS are looked up as keys on env.
func WithEnv(env *viper.Viper) Option {
	return func(c *config) { c.env = env }
}

// WithRegisterer registers the cache metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

func newConfig(opts ...Option) *config {
	c := &config{
		fs:    afero.NewOsFs(),
		log:   logrus.StandardLogger(),
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(c)
	}

	// Only error is a type mismatch, which can't happen here.
	_ = mergo.Merge(&c.options, DefaultOptions())
	if c.options.TTL < 0 {
		c.options.TTL = DefaultTTL
	}
	if c.options.SweepInterval < 0 {
		c.options.SweepInterval = DefaultSweepInterval
	}

	if c.env == nil {
		c.env = viper.New()
		_ = c.env.BindEnv(envKubeconfig)
		_ = c.env.BindEnv(envStrictPermissions)
	}
	if c.env.GetBool(envStrictPermissions) {
		c.options.StrictPermissions = true
	}
	return c
}

package kubeauth

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type cacheMetrics struct {
	hits        prometheus.Counter
	misses      prometheus.Counter
	evictions   prometheus.Counter
	expirations prometheus.Counter
}

func newCacheMetrics(reg prometheus.Registerer, log logrus.FieldLogger) *cacheMetrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kubeauth_cache_hits_total",
			Help: "Total number of resolutions served from a live cached bundle",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kubeauth_cache_misses_total",
			Help: "Total number of resolutions that had to read the kubeconfig",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kubeauth_cache_evictions_total",
			Help: "Total number of bundles removed and zeroized, for any reason",
		}),
		expirations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kubeauth_cache_expirations_total",
			Help: "Total number of bundles dropped because their TTL elapsed",
		}),
	}
	if reg == nil {
		return m
	}

	m.hits = register(reg, log, m.hits)
	m.misses = register(reg, log, m.misses)
	m.evictions = register(reg, log, m.evictions)
	m.expirations = register(reg, log, m.expirations)
	return m
}

// register registers c on reg, reusing the counter already registered under
// the same name when there is one. Other failures are logged and leave c
// counting unregistered.
func register(reg prometheus.Registerer, log logrus.FieldLogger, c prometheus.Counter) prometheus.Counter {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	are := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing
		}
	}
	log.WithError(err).Warn("kubeauth: could not register cache metric")
	return c
}

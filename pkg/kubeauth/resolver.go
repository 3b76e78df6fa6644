package kubeauth

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"k8s.io/utils/clock"
)

// Resolver turns a kubeconfig into a Bundle, following the current-context to
// its cluster and user. Results are cached for Options.TTL.
type Resolver struct {
	loader  *Loader
	cache   *Cache
	sweeper *Sweeper
	fs      afero.Fs
	clock   clock.PassiveClock
	ttl     time.Duration
	log     logrus.FieldLogger
}

// NewResolver returns a Resolver with its own cache, unless WithCache is given.
func NewResolver(opts ...Option) *Resolver {
	cfg := newConfig(opts...)
	cache := cfg.cache
	if cache == nil {
		cache = newCache(cfg)
	}
	return &Resolver{
		loader:  newLoader(cfg),
		cache:   cache,
		sweeper: newSweeper(cache, cfg),
		fs:      cfg.fs,
		clock:   cfg.clock,
		ttl:     cfg.options.TTL,
		log:     cfg.log,
	}
}

// Cache returns the cache the resolver reads from and fills.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// RunSweeper drops expired bundles from the cache every SweepInterval until
// ctx is done. Call it in its own goroutine; it is not needed for correctness.
func (r *Resolver) RunSweeper(ctx context.Context) {
	r.sweeper.Run(ctx)
}

// Invalidate evicts and zeroizes the bundle cached for path.
func (r *Resolver) Invalidate(path string) bool {
	return r.cache.Evict(CacheKey(path))
}

// Resolve returns the credentials of the current-context of the kubeconfig at
// path. An empty path searches the default locations, see Loader.
//
// A live cached bundle is returned as is. Otherwise the kubeconfig is read,
// and the resulting bundle is cached before being returned.
func (r *Resolver) Resolve(path string) (*Bundle, error) {
	key := CacheKey(path)
	log := r.log.WithField("key", shortKey(key))

	if b, ok := r.cache.Get(key); ok {
		log.Debug("kubeauth: cache hit")
		return b, nil
	}
	log.Debug("kubeauth: cache miss")

	doc, err := r.loader.Load(path)
	if err != nil {
		return nil, err
	}

	b, err := r.extract(doc)
	if err != nil {
		return nil, err
	}

	r.cache.Put(key, b)
	return b, nil
}

func (r *Resolver) extract(doc *Document) (*Bundle, error) {
	if doc.CurrentContext == "" {
		return nil, errors.Wrapf(ErrMissingCurrentContext, "kubeconfig %s", doc.Path)
	}

	kubeCtx, ok := doc.FindContext(doc.CurrentContext)
	if !ok {
		return nil, errors.Wrapf(ErrContextNotFound, "current-context %q", doc.CurrentContext)
	}
	cluster, ok := doc.FindCluster(kubeCtx.Cluster)
	if !ok {
		return nil, errors.Wrapf(
			ErrClusterNotFound, "cluster %q of context %q", kubeCtx.Cluster, doc.CurrentContext)
	}
	user, ok := doc.FindUser(kubeCtx.AuthInfo)
	if !ok {
		return nil, errors.Wrapf(
			ErrUserNotFound, "user %q of context %q", kubeCtx.AuthInfo, doc.CurrentContext)
	}

	ca, err := r.readCredential(
		"certificate-authority", doc.Dir(), cluster.CertificateAuthorityData, cluster.CertificateAuthority)
	if err != nil {
		return nil, err
	}
	cert, err := r.readCredential(
		"client-certificate", doc.Dir(), user.ClientCertificateData, user.ClientCertificate)
	if err != nil {
		zero(ca)
		return nil, err
	}
	key, err := r.readCredential(
		"client-key", doc.Dir(), user.ClientKeyData, user.ClientKey)
	if err != nil {
		zero(ca)
		zero(cert)
		return nil, err
	}

	return newBundle(
		cluster.Server,
		cert,
		key,
		ca,
		cluster.InsecureSkipTLSVerify,
		r.clock,
		r.ttl,
	), nil
}

// readCredential returns inline data when present, otherwise the contents of
// the referenced file. The two are never merged. Relative references resolve
// against the kubeconfig's directory, like kubectl does.
func (r *Resolver) readCredential(field, dir string, inline []byte, ref string) ([]byte, error) {
	if len(inline) > 0 {
		return inline, nil
	}
	if ref == "" {
		return nil, nil
	}

	if !filepath.IsAbs(ref) {
		ref = filepath.Join(dir, ref)
	}
	data, err := afero.ReadFile(r.fs, ref)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrCredentialFileNotFound, "%s %s", field, ref)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s %s", field, ref)
	}
	return data, nil
}

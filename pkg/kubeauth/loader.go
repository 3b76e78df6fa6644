package kubeauth

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	clientcmdv1 "k8s.io/client-go/tools/clientcmd/api/v1"
	"sigs.k8s.io/yaml"

	"go.jetpack.io/kubeauth/goutil/fileutil"
)

// Document is a parsed kubeconfig together with the path it was read from.
type Document struct {
	clientcmdv1.Config

	Path string
}

// Dir is the directory relative credential file references resolve against.
func (d *Document) Dir() string {
	return filepath.Dir(d.Path)
}

// FindContext returns the context named name, if any.
func (d *Document) FindContext(name string) (*clientcmdv1.Context, bool) {
	c, ok := lo.Find(d.Contexts, func(c clientcmdv1.NamedContext) bool {
		return c.Name == name
	})
	return &c.Context, ok
}

// FindCluster returns the cluster named name, if any.
func (d *Document) FindCluster(name string) (*clientcmdv1.Cluster, bool) {
	c, ok := lo.Find(d.Clusters, func(c clientcmdv1.NamedCluster) bool {
		return c.Name == name
	})
	return &c.Cluster, ok
}

// FindUser returns the user (AuthInfo) named name, if any.
func (d *Document) FindUser(name string) (*clientcmdv1.AuthInfo, bool) {
	u, ok := lo.Find(d.AuthInfos, func(u clientcmdv1.NamedAuthInfo) bool {
		return u.Name == name
	})
	return &u.AuthInfo, ok
}

// Loader locates and parses kubeconfig files. It searches, in order:
// + The explicit path passed to Load.
// + The path in $KUBECONFIG, if that file exists.
// + ${HOME}/.kube/config
//
// File permissions are not checked unless Options.StrictPermissions is set.
type Loader struct {
	fs                afero.Fs
	env               *viper.Viper
	homeDir           string
	strictPermissions bool
	log               logrus.FieldLogger
}

// NewLoader returns a Loader configured by opts.
func NewLoader(opts ...Option) *Loader {
	return newLoader(newConfig(opts...))
}

func newLoader(cfg *config) *Loader {
	return &Loader{
		fs:                cfg.fs,
		env:               cfg.env,
		homeDir:           cfg.options.HomeDir,
		strictPermissions: cfg.options.StrictPermissions,
		log:               cfg.log,
	}
}

// Load reads and parses the kubeconfig. An empty path means "use the default
// locations".
func (l *Loader) Load(path string) (*Document, error) {
	path, err := l.locate(path)
	if err != nil {
		return nil, err
	}

	if l.strictPermissions {
		loose, err := fileutil.HasLoosePermissions(l.fs, path)
		if err != nil {
			return nil, withCause(ErrConfigReadOrParse, err, "stat %s", path)
		}
		if loose {
			return nil, errors.Wrapf(ErrInsecurePermissions, "kubeconfig %s", path)
		}
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, withCause(ErrConfigReadOrParse, err, "read %s", path)
	}

	doc := &Document{Path: path}
	if err := yaml.Unmarshal(data, &doc.Config); err != nil {
		return nil, withCause(ErrConfigReadOrParse, err, "parse %s", path)
	}
	return doc, nil
}

func (l *Loader) locate(path string) (string, error) {
	if path != "" {
		ok, err := fileutil.FileExists(l.fs, path)
		if err != nil {
			return "", withCause(ErrConfigReadOrParse, err, "stat %s", path)
		}
		if !ok {
			return "", errors.Wrapf(ErrConfigNotFound, "no file at %s", path)
		}
		l.log.WithField("source", "argument").Debug("kubeauth: using kubeconfig")
		return path, nil
	}

	if envPath := l.env.GetString(envKubeconfig); envPath != "" {
		ok, err := fileutil.FileExists(l.fs, envPath)
		if err == nil && ok {
			l.log.WithField("source", envKubeconfig).Debug("kubeauth: using kubeconfig")
			return envPath, nil
		}
		l.log.Debugf("kubeauth: ignoring $%s, it does not name a file", envKubeconfig)
	}

	if l.homeDir != "" {
		defaultPath := filepath.Join(l.homeDir, ".kube", "config")
		if ok, _ := fileutil.FileExists(l.fs, defaultPath); ok {
			l.log.WithField("source", "home").Debug("kubeauth: using kubeconfig")
			return defaultPath, nil
		}
	}

	return "", errors.Wrapf(
		ErrConfigNotFound,
		"no path given, $%s unset or invalid and no ~/.kube/config",
		envKubeconfig,
	)
}

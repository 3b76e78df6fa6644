package kubeauth

import (
	"net/http"

	"github.com/pkg/errors"
	"k8s.io/client-go/rest"
)

// ToRESTConfig maps the bundle onto a client-go rest.Config. The credential
// buffers are copied, so the config stays usable after the bundle is cleaned
// up. The CA is left out when verification is skipped, since client-go
// rejects that combination.
func (b *Bundle) ToRESTConfig() *rest.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cfg := &rest.Config{
		Host: b.serverURL,
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: b.skipVerify,
			CertData: clone(b.certificate),
			KeyData:  clone(b.privateKey),
		},
	}
	if !b.skipVerify {
		cfg.TLSClientConfig.CAData = clone(b.caCertificate)
	}
	return cfg
}

// HTTPClient builds an HTTP client that authenticates with the bundle's
// credentials.
func (b *Bundle) HTTPClient() (*http.Client, error) {
	client, err := rest.HTTPClientFor(b.ToRESTConfig())
	return client, errors.Wrap(err, "failed to build HTTP client from kubeconfig credentials")
}

func clone(buf []byte) []byte {
	if buf == nil {
		return nil
	}
	return append([]byte(nil), buf...)
}

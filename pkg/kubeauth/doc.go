// Package kubeauth resolves the credentials of the current kube-context and
// caches them in memory.
//
// The kubeconfig is looked up the same way kubectl does it for a single file:
// an explicit path, then $KUBECONFIG, then "${HOME}/.kube/config":
//
//	```
//	r := kubeauth.NewResolver()
//	bundle, err := r.Resolve("") // or r.Resolve("path/to/kubeconfig")
//	client, err := bundle.HTTPClient()
//	```
//
// Resolved bundles are cached for an hour, keyed by a hash of the path. When a
// bundle leaves the cache its certificate, key and CA buffers are zeroed.
// Long running programs can drop idle bundles early with:
//
//	```
//	go r.RunSweeper(ctx)
//	```
package kubeauth

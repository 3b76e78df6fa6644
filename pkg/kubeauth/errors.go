package kubeauth

import (
	"github.com/pkg/errors"
	"go.jetpack.io/kubeauth/goutil/errorutil"
)

// Errors returned by Resolve. Each one is wrapped with the detail of the step
// that failed, so use errors.Is to test for them. Their text is meant for end
// users, see errorutil.GetUserErrorMessage.
var (
	ErrConfigNotFound = errorutil.NewUserError(
		"No kubeconfig found. Pass a path, set $KUBECONFIG or create ~/.kube/config",
	)
	ErrConfigReadOrParse = errorutil.NewUserError(
		"Could not read or parse the kubeconfig",
	)
	ErrInsecurePermissions = errorutil.NewUserError(
		"The kubeconfig is accessible by group or others and strict permissions are enabled",
	)
	ErrMissingCurrentContext = errorutil.NewUserError(
		"The kubeconfig has no current-context",
	)

	ErrContextNotFound = errorutil.NewUserError("Context not found in kubeconfig")
	ErrClusterNotFound = errorutil.NewUserError("Cluster not found in kubeconfig")
	ErrUserNotFound    = errorutil.NewUserError("User not found in kubeconfig")

	ErrCredentialFileNotFound = errorutil.NewUserError(
		"A certificate, key or CA file referenced by the kubeconfig does not exist",
	)
)

// withCause attaches kind to cause, keeping both reachable with errors.Is.
func withCause(kind *errorutil.UserError, cause error, format string, args ...any) error {
	return errorutil.CombinedError(errors.Wrapf(cause, format, args...), kind)
}

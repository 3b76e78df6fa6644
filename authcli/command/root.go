package command

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.jetpack.io/kubeauth/authcli/flags"
	"go.jetpack.io/kubeauth/goutil/errorutil"
	"go.jetpack.io/kubeauth/pkg/kubeauth"
	"golang.org/x/sys/unix"
)

// These options let the CLI be embedded with additional commands and a
// customized resolver.
type cmdOptions interface {
	AdditionalCommands() []*cobra.Command
	NewResolver(extra ...kubeauth.Option) *kubeauth.Resolver
	RootCommand() *cobra.Command
	RootFlags() *flags.RootCmdFlags
}

// This is global for now (for expediency). We could pass these options down
// to every function that needs them.
var cmdOpts cmdOptions

func NewRootCmd(opts cmdOptions) *cobra.Command {
	cmdOpts = opts
	rootCmd := &cobra.Command{
		Use:   "kubeauth",
		Short: "Resolve client credentials from a kubeconfig",
		Long:  "Resolve client credentials from a kubeconfig",
		// If an error occurs then cobra will print the Usage (i.e. --help)
		// but we don't want that. This still prints usage if user types
		// --help, or `kubeauth help <cmd>`.
		SilenceUsage: true,
		// We print the error via special handling in the Execute() function
		// so we silence it here. If this were false, then we would
		// double-print the error message.
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetLevel(cmdOpts.RootFlags().LogLevel())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.WithStack(cmd.Help())
		},
	}

	rootCmd.AddCommand(
		resolveCmd(),
		versionCmd(),
	)

	rootCmd.AddCommand(cmdOpts.AdditionalCommands()...)

	cmdOpts.RootFlags().Register(rootCmd.PersistentFlags())

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}

// Execute is the entry point for CLI app.
func Execute(ctx context.Context, opts cmdOptions) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, unix.SIGTERM)
	defer stop()

	err := opts.RootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}

	if opts.RootFlags().Debug {
		stackTrace := errorutil.EarliestStackTrace(err)
		errChainMsg := fmt.Sprintf("Error chain is:\n\t %s.\n\n", err.Error())
		if stackTrace != nil {
			log.Fatalf("%sStacktrace:\n%+v\n", errChainMsg, stackTrace)
		}
		log.Fatalf(
			"%sFailed to get Stacktrace:\n%+v\n",
			errChainMsg,
			errors.Cause(err),
		)
	}

	if errors.Is(err, context.Canceled) {
		fmt.Println("ABORT: Operation cancelled by user interruption.")
		stop()
		os.Exit(1)
	}

	// errors: normal golang errors
	// combined: golang error + user friendly error to display
	// user: no golang error cause, just a user error we created.
	if msg := errorutil.GetUserErrorMessage(err); msg != "" {
		color.Red(
			"\nError: %s\n\nCaused by:\n\n %s\n\nRun with --debug for more information",
			msg,
			err,
		)
		stop()
		os.Exit(1)
	}
	log.Fatalf(
		"ABORT: There was an error. The cause is:\n\t %s. \n"+
			"Run with --debug for more information",
		errors.Cause(err),
	)
}

package command

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.jetpack.io/kubeauth/pkg/jetlog"
	"go.jetpack.io/kubeauth/pkg/kubeauth"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type resolveCmdFlags struct {
	kubeconfig        string
	output            string
	strictPermissions bool
}

// resolveSummary describes a bundle without exposing key material.
type resolveSummary struct {
	Kubeconfig            string `yaml:"kubeconfig"`
	Server                string `yaml:"server"`
	InsecureSkipTLSVerify bool   `yaml:"insecureSkipTLSVerify"`
	CACertificateBytes    int    `yaml:"caCertificateBytes"`
	CertificateBytes      int    `yaml:"certificateBytes"`
	PrivateKeyBytes       int    `yaml:"privateKeyBytes"`
	ExpiresAt             string `yaml:"expiresAt"`
}

func resolveCmd() *cobra.Command {
	opts := &resolveCmdFlags{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the credentials of the current context",
		Long: heredoc.Doc(`
			Resolve the credentials of the current context of a kubeconfig.

			The kubeconfig is taken from --kubeconfig, then $KUBECONFIG, then
			~/.kube/config. Certificate and key material is never printed, only
			its size.
		`),
		Example: heredoc.Doc(`
			kubeauth resolve
			kubeauth resolve --kubeconfig ./dev.kubeconfig --output yaml
			kubeauth resolve --strict-permissions
		`),
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputYAML {
				return errors.Errorf(
					"unknown output %q, use one of: %s, %s",
					opts.output, outputText, outputYAML,
				)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []kubeauth.Option
			if opts.strictPermissions {
				extra = append(extra, kubeauth.WithStrictPermissions())
			}
			resolver := cmdOpts.NewResolver(extra...)

			out := jetlog.New(cmd.OutOrStdout())
			var bundle *kubeauth.Bundle
			var err error
			out.WithSpinnerFuncPrint(func() {
				bundle, err = resolver.Resolve(opts.kubeconfig)
			}, "Reading kubeconfig")
			if err != nil {
				return err
			}
			defer resolver.Cache().Purge()

			summary := summarize(opts.kubeconfig, bundle)
			if opts.output == outputYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return errors.WithStack(enc.Encode(summary))
			}
			printSummary(out, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(
		&opts.kubeconfig,
		"kubeconfig",
		"",
		"path to the kubeconfig file",
	)
	cmd.Flags().StringVarP(
		&opts.output,
		"output",
		"o",
		outputText,
		fmt.Sprintf("output format. One of: %s, %s", outputText, outputYAML),
	)
	cmd.Flags().BoolVar(
		&opts.strictPermissions,
		"strict-permissions",
		false,
		"reject kubeconfig files readable by group or others",
	)
	return cmd
}

func summarize(path string, b *kubeauth.Bundle) *resolveSummary {
	if path == "" {
		path = "default"
	}
	return &resolveSummary{
		Kubeconfig:            path,
		Server:                b.ServerURL(),
		InsecureSkipTLSVerify: b.SkipVerify(),
		CACertificateBytes:    len(b.CACertificate()),
		CertificateBytes:      len(b.Certificate()),
		PrivateKeyBytes:       len(b.PrivateKey()),
		ExpiresAt:             b.ExpiresAt().UTC().Format(time.RFC3339),
	}
}

func printSummary(out *jetlog.Logger, s *resolveSummary) {
	out.HeaderPrintf("Credentials for %s", s.Kubeconfig)
	out.IndentedPrintln("Server:       %s", s.Server)
	if s.InsecureSkipTLSVerify {
		out.WarningPrintf("TLS verification is disabled for %s", s.Server)
	}
	out.IndentedPrintln("CA:           %d bytes", s.CACertificateBytes)
	out.IndentedPrintln("Certificate:  %d bytes", s.CertificateBytes)
	out.IndentedPrintln("Private key:  %d bytes", s.PrivateKeyBytes)
	out.IndentedPrintln("Expires:      %s", s.ExpiresAt)
}

// Copyright 2022 Jetpack Technologies Inc and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package authcli

import (
	"context"

	"github.com/spf13/cobra"
	"go.jetpack.io/kubeauth/authcli/command"
	"go.jetpack.io/kubeauth/authcli/flags"
	"go.jetpack.io/kubeauth/pkg/kubeauth"
)

type Authcli struct {
	additionalCommands []*cobra.Command
	resolverOptions    []kubeauth.Option
	rootCommand        *cobra.Command
	rootFlags          *flags.RootCmdFlags
}
type authcliOption func(*Authcli)

func New(opts ...authcliOption) *Authcli {
	a := &Authcli{
		rootFlags: &flags.RootCmdFlags{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Authcli) Run(ctx context.Context) {
	command.Execute(ctx, a)
}

// NewResolver builds a resolver from the options given to New followed by
// extra.
func (a *Authcli) NewResolver(extra ...kubeauth.Option) *kubeauth.Resolver {
	opts := make([]kubeauth.Option, 0, len(a.resolverOptions)+len(extra))
	opts = append(opts, a.resolverOptions...)
	opts = append(opts, extra...)
	return kubeauth.NewResolver(opts...)
}

func (a *Authcli) RootFlags() *flags.RootCmdFlags {
	return a.rootFlags
}

func (a *Authcli) RootCommand() *cobra.Command {
	if a.rootCommand == nil {
		a.rootCommand = command.NewRootCmd(a)
	}
	return a.rootCommand
}

func (a *Authcli) AdditionalCommands() []*cobra.Command {
	return a.additionalCommands
}

// Options
type cmdFunc func(a *Authcli) *cobra.Command

func WithAdditionalCommands(cmds ...cmdFunc) authcliOption {
	return func(a *Authcli) {
		for _, cmd := range cmds {
			a.additionalCommands = append(a.additionalCommands, cmd(a))
		}
	}
}

func WithResolverOptions(opts ...kubeauth.Option) authcliOption {
	return func(a *Authcli) {
		a.resolverOptions = append(a.resolverOptions, opts...)
	}
}

package command

import (
	"github.com/spf13/cobra"
	"go.jetpack.io/kubeauth/pkg/buildstamp"
	"go.jetpack.io/kubeauth/pkg/jetlog"
)

const binaryName = "kubeauth"

func versionCmd() *cobra.Command {
	verboseFlag := false
	shortFlag := false

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := jetlog.New(cmd.OutOrStdout())
			v := buildstamp.Version()
			if shortFlag {
				out.Println(v)
				return nil
			}
			out.Printf("%v %v\n", binaryName, v)
			if verboseFlag {
				buildstamp.PrintVerboseVersion(cmd.OutOrStdout())
			}
			return nil
		},
	}
	versionCmd.Flags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false, // value
		"Set to true for verbose output",
	)
	versionCmd.Flags().BoolVarP(
		&shortFlag,
		"short",
		"s",
		false, // value
		"Set to true for short output",
	)
	return versionCmd
}

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
)

// CurrentVersion returns the current version of the binary.
func CurrentVersion() (string, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", fmt.Errorf("failed to read BuildInfo because the program was compiled with Go %s", runtime.Version())
	}

	return cobrautil.VersionWithFallbacks(bi), nil
}

// UsageVersion formats the version of the binary, optionally followed by the
// versions of the modules it was built with.
func UsageVersion(programName string, includeDeps bool) string {
	version, err := CurrentVersion()
	if err != nil {
		version = "(unknown)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", programName, version)
	if !includeDeps {
		return sb.String()
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			fmt.Fprintf(&sb, "\n  %s %s", dep.Path, dep.Version)
		}
	}
	return sb.String()
}

func NewVersionCommand(programName string) *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "displays the version of " + programName,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), UsageVersion(programName, cobrautil.MustGetBool(cmd, "include-deps")))
			return err
		},
	}
	versionCmd.Flags().Bool("include-deps", false, "include versions of dependencies")
	return versionCmd
}

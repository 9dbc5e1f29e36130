package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the drivesh application
var rootCmd = &cobra.Command{
	Use:   "drivesh",
	Short: "An interactive shell for Google Drive",
	Long: `drivesh is an interactive command shell for Google Drive.

It maps familiar shell commands (ls, cd, pull, push, rm, mv, search, ...)
onto the Drive REST API and layers a working-directory abstraction over
Drive's flat, parent-pointer file graph.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "drivesh version %s\n" .Version}}`)

	// If no subcommand is provided, run the shell command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "shell")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drivesh version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("drivesh version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

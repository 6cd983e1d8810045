package main

import (
	"context"
	"os"

	"github.com/sha1n/gdoc-comments/internal/app"
	"github.com/spf13/cobra"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "gdoc-comments"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Google Docs comments exporter",
		Long:         "Exports the comments of a Google Docs document as a report ordered by the paragraph each comment is anchored to",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	app.RegisterCommonFlags(rootCmd.PersistentFlags())

	reportCmd := &cobra.Command{
		Use:   "report <document-id-or-url>",
		Short: "Export the comments report of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunReportWithDeps(context.Background(), app.DefaultReportRunParams(), cmd.Flags(), args[0])
		},
	}
	app.RegisterReportFlags(reportCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comment report and search tools over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunServeWithDeps(context.Background(), app.DefaultRunParams(), cmd.Flags(), version)
		},
	}
	app.RegisterServeFlags(serveCmd.Flags())

	rootCmd.AddCommand(reportCmd, serveCmd)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

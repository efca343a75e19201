package main

import (
	"fmt"
	"os"

	_ "bloglist/docs"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:          "bloglist",
	Short:        "Blog list API server",
	SilenceUsage: true,
	// bare invocation behaves like "serve"
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "directory holding config.yml")
}

// @title                       Bloglist API
// @version                     1.0
// @description                 Blog list with user accounts, token authentication and owner-only edits.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

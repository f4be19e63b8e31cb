package cmd

import (
	"github.com/huangsam/cybercompass/internal/mcp"
	"github.com/huangsam/cybercompass/internal/metrics"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the CyberCompass MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents run quiz sessions
through standard tools. Logs go to stderr; stdout carries the protocol.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		reg, err := newRegistry(log, metrics.Default())
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, reg, version, log)
	},
}

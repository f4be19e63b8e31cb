// Package main is the entry point of the cybercompass CLI.
package main

import (
	"github.com/huangsam/cybercompass/cmd"
	"github.com/huangsam/cybercompass/internal/contract"
)

func main() {
	defer cmd.CloseArchive()
	if err := cmd.Execute(); err != nil {
		_ = cmd.StopProfiling()
		cmd.CloseArchive()
		contract.LogFatal("cybercompass failed", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("failed to stop profiling", err)
	}
}

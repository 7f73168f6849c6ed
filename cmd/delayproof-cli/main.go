package main

import (
	"context"

	"github.com/hofftmuz/subway-delay-certificate/cmd/delayproof-cli/commands"
	"github.com/hofftmuz/subway-delay-certificate/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "delayproof-cli")
	telemetry.InitSlog(false)
	commands.ExecuteContext(context.Background())
}

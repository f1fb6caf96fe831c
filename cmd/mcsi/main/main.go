package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/mcsi/cmd/mcsi"
	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/ui/styles"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := mcsi.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	log.Error().
		Str("code", string(errors.GetErrorCode(err))).
		Interface("details", errors.GetErrorDetails(err)).
		Strs("chain", errors.Chain(err)).
		Msg("Run failed")
	logging.Close()

	errorStyle := styles.GetStyle("Error")
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	os.Exit(1)
}

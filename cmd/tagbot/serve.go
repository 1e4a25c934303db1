package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xaenox/tagbot/internal/bot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long:  "Start the Telegram bot and tag every incoming text message.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := serveLogger()
	defer logger.Sync()

	svc, cfg, err := buildService(cmd.Context(), logger)
	if err != nil {
		return err
	}

	if cfg.Telegram.Token == "" {
		return errors.New("telegram token is not configured (set telegram.token or TELEGRAM_TOKEN)")
	}

	b, err := bot.New(cfg.Telegram.Token, svc, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting bot",
		zap.Strings("categories", svc.Categories()),
		zap.String("fallback", svc.Fallback()))

	return b.Start()
}

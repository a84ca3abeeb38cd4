package main

import (
	"github.com/aretw0/trinomial/internal/logging"
	"github.com/aretw0/trinomial/pkg/adapters/telegram"
	"github.com/spf13/cobra"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run the Telegram bot (long polling)",
	Long: `Answers every text message with its factorization.
The token comes from --token, the config file or TELEGRAM_BOT_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("token") {
			cfg.Telegram.Token, _ = cmd.Flags().GetString("token")
		}

		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.Debug)
		if err != nil {
			return err
		}

		engine, closer, err := newEngine(cmd.Context(), logging.DebugHooks(logger))
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		router := telegram.NewRouter(engine, bot, telegram.WithLogger(logger))
		logger.Info("Telegram bot started", "username", bot.Self.UserName)
		return router.Run(cmd.Context(), bot, cfg.Telegram.Timeout)
	},
}

func init() {
	rootCmd.AddCommand(telegramCmd)
	telegramCmd.Flags().String("token", "", "Bot API token")
}

package main

import (
	"errors"

	"github.com/matst80/slask-storefront/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var publishSettingsCmd = &cobra.Command{
	Use:   "publish-settings",
	Short: "Save the effective settings and broadcast them to running storefronts",
	RunE:  runPublishSettings,
}

func runPublishSettings(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err = a.storage.SaveSettings(a.settings); err != nil {
		return err
	}
	if a.config.RabbitUrl == "" {
		return errors.New("no rabbit url configured, settings only saved to disk")
	}
	conn, err := amqp.DialConfig(a.config.RabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err = messaging.PublishSettings(conn, a.config.Prefix, a.settings); err != nil {
		return err
	}
	log.Info().Str("prefix", a.config.Prefix).Msg("settings published")
	return nil
}

package messaging

import (
	"github.com/matst80/slask-storefront/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// SettingsHandler applies broadcast settings to current. onChange runs after
// every applied update.
func SettingsHandler(current *types.Settings, onChange func()) func([]byte) error {
	return DecodeInto(func(incoming *types.Settings) error {
		if err := current.Replace(incoming); err != nil {
			return err
		}
		log.Info().Str("defaultSort", string(current.GetDefaultSort())).Int("rules", len(current.Rules())).Msg("settings updated")
		if onChange != nil {
			onChange()
		}
		return nil
	})
}

func ListenForSettings(conn *amqp.Connection, prefix string, current *types.Settings, onChange func()) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err = DefineTopic(ch, prefix, SettingsChanged); err != nil {
		ch.Close()
		return err
	}
	return ListenToTopic(ch, prefix, SettingsChanged, SettingsHandler(current, onChange))
}

func PublishSettings(conn *amqp.Connection, prefix string, settings *types.Settings) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	err = DefineTopic(ch, prefix, SettingsChanged)
	ch.Close()
	if err != nil {
		return err
	}
	settings.RLock()
	defer settings.RUnlock()
	return SendChange(conn, prefix, SettingsChanged, settings)
}

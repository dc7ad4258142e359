package account

import (
	"context"
	"errors"

	"user-directory/kafka/consumer"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const consumerNameCreateAccount = "create_account_command"

func CreateAccountCommandConsumer(brokers []string) func(topic string) func(groupId string) consumer.Config {
	return consumer.NewConfig(brokers)(consumerNameCreateAccount)
}

func CreateAccountCommandHandler(db *gorm.DB, opts ...ProcessorOption) consumer.Handler {
	return consumer.AdaptHandler(handleCreateAccountCommand(db, opts...))
}

func handleCreateAccountCommand(db *gorm.DB, opts ...ProcessorOption) func(l logrus.FieldLogger, ctx context.Context, c createCommand) {
	return func(l logrus.FieldLogger, ctx context.Context, c createCommand) {
		l.Debugf("Received create account command for [%s].", c.Username)
		_, err := processor(l, ctx, db, opts...).Create(c.Username, c.Password)
		if errors.Is(err, ErrMissingCredentials) {
			l.Errorf("Ignoring create account command with missing credentials.")
			return
		}
		if errors.Is(err, ErrUsernameTaken) {
			return
		}
		if err != nil {
			l.WithError(err).Errorf("Error processing command to create account [%s].", c.Username)
		}
	}
}

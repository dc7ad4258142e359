package account

import (
	"user-directory/kafka/producer"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

func createdEventProvider() func(accountId uint32, username string) model.Provider[[]kafka.Message] {
	return accountStatusEventProvider(EventAccountStatusCreated)
}

func updatedEventProvider() func(accountId uint32, username string) model.Provider[[]kafka.Message] {
	return accountStatusEventProvider(EventAccountStatusUpdated)
}

func accountStatusEventProvider(status string) func(accountId uint32, username string) model.Provider[[]kafka.Message] {
	return func(accountId uint32, username string) model.Provider[[]kafka.Message] {
		key := producer.CreateKey(int(accountId))
		value := &statusEvent{
			AccountId: accountId,
			Username:  username,
			Status:    status,
		}
		return producer.SingleMessageProvider(key, value)
	}
}

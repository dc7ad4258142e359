package main

import (
	"user-directory/account"
	"user-directory/configuration"
	"user-directory/database"
	"user-directory/kafka/consumer"
	"user-directory/kafka/producer"
	"user-directory/logger"
	"user-directory/login"
	"user-directory/rest"
	"user-directory/service"
	"user-directory/tracing"
)

const serviceName = "user-directory"

func main() {
	l := logger.CreateLogger(serviceName)
	l.Infoln("Starting main service.")

	c, err := configuration.Get()
	if err != nil {
		l.WithError(err).Fatal("Unable to load configuration.")
	}

	tdm := service.GetTeardownManager()

	tc, err := tracing.InitTracer(l)(serviceName, c.Tracing.Endpoint)
	if err != nil {
		l.WithError(err).Fatal("Unable to initialize tracer.")
	}

	db, err := database.Connect(l,
		database.SetDriver(c.Database.Driver),
		database.SetDSN(c.Database.DSN),
		database.SetDebug(c.Database.Debug),
		database.SetMigrations(account.Migration))
	if err != nil {
		l.WithError(err).Fatal("Unable to connect to database.")
	}

	pr := producer.Noop(l)
	if c.Kafka.Enabled() {
		pr = producer.New(l, producer.KafkaWriterFactory(c.Kafka.Brokers))
		cc := account.CreateAccountCommandConsumer(c.Kafka.Brokers)(c.Kafka.CommandCreateTopic)(c.Kafka.ConsumerGroupId)
		consumer.Start(l, tdm.Context(), tdm.WaitGroup())(cc, consumer.KafkaReader(cc), account.CreateAccountCommandHandler(db, account.WithEventProducer(pr, c.Kafka.EventStatusTopic)))
	} else {
		l.Infof("No Kafka brokers configured. Account status events will be discarded.")
	}
	opts := []account.ProcessorOption{account.WithEventProducer(pr, c.Kafka.EventStatusTopic)}

	rest.CreateService(l, tdm.Context(), tdm.WaitGroup(), c.Server.Address, c.Server.Prefix,
		rest.HealthResource(),
		account.InitResource(db, opts...),
		login.InitResource(db))

	tdm.TeardownFunc(func() {
		if err := pr.Close(); err != nil {
			l.WithError(err).Errorf("Unable to close producer.")
		}
	})
	tdm.TeardownFunc(database.Teardown(l, db))
	tdm.TeardownFunc(tracing.Teardown(l)(tc))

	tdm.Wait()

	l.Infoln("Service shutdown.")
}

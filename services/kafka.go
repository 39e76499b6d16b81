package services

import (
	"encoding/json"
	"log"

	"passkey_ms/config"
	"passkey_ms/dtos/request"

	"github.com/IBM/sarama"
)

func sendEventToKafka(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	producer, err := sarama.NewSyncProducer(config.Conf.Application.Kafka.Brokers, nil)
	if err != nil {
		log.Println("Failed to create sync producer:", err)
		return err
	}
	defer producer.Close()

	msg := &sarama.ProducerMessage{
		Topic: config.Conf.Application.Kafka.Topic,
		Value: sarama.StringEncoder(data),
	}
	partition, offset, err := producer.SendMessage(msg)
	if err != nil {
		log.Println("Failed to send passkey event:", err)
		return err
	}
	log.Printf("Passkey event sent to partition %d at offset %d\n", partition, offset)
	return nil
}

func SendPasskeyRegisteredEventToKafka(event *request.PasskeyRegisteredEvent) error {
	return sendEventToKafka(event)
}

func SendPasskeyAuthenticatedEventToKafka(event *request.PasskeyAuthenticatedEvent) error {
	return sendEventToKafka(event)
}

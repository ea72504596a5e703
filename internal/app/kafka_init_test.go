package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	producer, err := initKafkaProducer(KafkaConfig{}, "₱", quietLogger(t))

	require.NoError(t, err)
	assert.Nil(t, producer)
}

func TestInitKafkaProducer_UnreachableBroker(t *testing.T) {
	// На порту 1 никто не слушает, подключение отклоняется сразу.
	producer, err := initKafkaProducer(KafkaConfig{Brokers: "127.0.0.1:1"}, "₱", quietLogger(t))

	require.Error(t, err)
	assert.Nil(t, producer)
}

func TestCloseKafka_NilProducer(t *testing.T) {
	assert.NoError(t, closeKafka(nil, quietLogger(t)))
}

package orchestrator

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"

	"invoiceradar/dedup"
	"invoiceradar/types"
)

// Announcer publishes newly aggregated items to a Kafka topic so downstream
// consumers (alerting, indexing) see each item exactly once. The optional
// bloom filter remembers announced items beyond the corpus window, so an
// item that ages out and is crawled again is not announced twice.
type Announcer struct {
	producer sarama.SyncProducer
	topic    string
	bloom    *dedup.RedisBloom
}

// NewAnnouncer connects a synchronous producer. bloom may be nil, in which
// case only the corpus diff guards against repeats.
func NewAnnouncer(brokers []string, topic string, bloom *dedup.RedisBloom) (*Announcer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Announcer{producer: producer, topic: topic, bloom: bloom}, nil
}

// Announce publishes each item as a JSON message keyed by item ID and
// returns how many went out. Individual failures are logged and skipped;
// announcing is a side channel and must never fail the run.
func (a *Announcer) Announce(items []*types.Item) int {
	sent := 0
	for _, item := range items {
		hash := dedup.AnnounceHash(item)

		if a.bloom != nil {
			seen, err := a.bloom.Exists(hash)
			if err != nil {
				log.Printf("announce: bloom check for %s: %v", item.ID, err)
			} else if seen {
				continue
			}
		}

		payload, err := json.Marshal(item)
		if err != nil {
			log.Printf("announce: encode %s: %v", item.ID, err)
			continue
		}

		_, _, err = a.producer.SendMessage(&sarama.ProducerMessage{
			Topic: a.topic,
			Key:   sarama.StringEncoder(item.ID),
			Value: sarama.ByteEncoder(payload),
		})
		if err != nil {
			log.Printf("announce: send %s: %v", item.ID, err)
			continue
		}
		sent++

		if a.bloom != nil {
			if err := a.bloom.Add(hash); err != nil {
				log.Printf("announce: bloom add for %s: %v", item.ID, err)
			}
		}
	}
	return sent
}

func (a *Announcer) Close() error {
	if a.bloom != nil {
		if err := a.bloom.Close(); err != nil {
			log.Printf("announce: close bloom: %v", err)
		}
	}
	return a.producer.Close()
}

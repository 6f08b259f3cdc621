package storefront

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// OutputDestination receives every storefront state change as a
// topic'd JSON message. This is the analytics tap that replaces the
// original UI re-render: an outbound stream, not a control surface.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	_, err := os.Stdout.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

type FileOutput struct {
	files    map[string]*os.File
	basePath string
}

// NewFileOutput creates a FileOutput writing one file per topic.
func NewFileOutput(basePath string) *FileOutput {
	return &FileOutput{
		files:    make(map[string]*os.File),
		basePath: basePath,
	}
}

func (f *FileOutput) WriteMessage(topic string, msg []byte) error {
	if _, ok := f.files[topic]; !ok {
		if err := os.MkdirAll(f.basePath, 0o755); err != nil {
			return fmt.Errorf("failed to create events dir: %w", err)
		}
		filename := filepath.Join(f.basePath, topic+".jsonl")
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		f.files[topic] = file
	}

	if _, err := f.files[topic].Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (f *FileOutput) Close() error {
	for _, file := range f.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

type KafkaOutput struct {
	producer sarama.SyncProducer
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("Kafka producer is closed")
	}
	_, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	return err
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}

func createKafkaProducer(brokerList []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Net.DialTimeout = 30 * time.Second
	config.Net.ReadTimeout = 30 * time.Second
	config.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// OpenOutput picks the event destination from config: Kafka when
// enabled, per-topic files when an events dir is set, stdout
// otherwise.
func OpenOutput(cfg *models.Config) (OutputDestination, error) {
	if cfg.KafkaEnabled {
		brokerList := strings.Split(cfg.KafkaBrokerList, ",")
		producer, err := createKafkaProducer(brokerList)
		if err != nil {
			return nil, err
		}
		return &KafkaOutput{producer: producer}, nil
	}
	if cfg.EventsDir != "" {
		return NewFileOutput(cfg.EventsDir), nil
	}
	return &ConsoleOutput{}, nil
}

// baseEvent is the envelope every emitted event shares.
type baseEvent struct {
	Timestamp int64  `json:"timestamp"`
	EventType string `json:"eventType"`
}

func (s *Storefront) emit(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("serializing %s event: %v", topic, err)
		return
	}
	if err := s.output.WriteMessage(topic, data); err != nil {
		logrus.Errorf("writing %s event: %v", topic, err)
	}
}

// emitCartEvent externalizes a cart mutation. Callers hold s.mu.
func (s *Storefront) emitCartEvent(eventType, menuItemID string) {
	subtotal := s.cart.Subtotal()
	s.emit("cart_events", struct {
		baseEvent
		MenuItemID string `json:"menuItemId,omitempty"`
		ItemCount  int    `json:"itemCount"`
		Subtotal   int    `json:"subtotal"`
		Total      int    `json:"total"`
	}{
		baseEvent:  baseEvent{Timestamp: s.clock.Now().Unix(), EventType: eventType},
		MenuItemID: menuItemID,
		ItemCount:  s.cart.ItemCount(),
		Subtotal:   subtotal,
		Total:      subtotal + s.cart.DeliveryFeeFor(subtotal),
	})
}

func (s *Storefront) emitOrderEvent(topic string, order models.Order) {
	itemIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		itemIDs = append(itemIDs, item.MenuItem.ID)
	}
	s.emit(topic, struct {
		baseEvent
		OrderID           string   `json:"orderId"`
		Items             []string `json:"item_ids"`
		Total             int      `json:"total"`
		Status            string   `json:"status"`
		EstimatedDelivery string   `json:"estimatedDelivery"`
		PaymentMethod     string   `json:"paymentMethod"`
		OrderPlacedAt     int64    `json:"order_placed_at"`
	}{
		baseEvent:         baseEvent{Timestamp: s.clock.Now().Unix(), EventType: "order_" + order.Status},
		OrderID:           order.ID,
		Items:             itemIDs,
		Total:             order.Total,
		Status:            order.Status,
		EstimatedDelivery: order.EstimatedDelivery,
		PaymentMethod:     order.PaymentMethod,
		OrderPlacedAt:     order.CreatedAt.Unix(),
	})
}

func (s *Storefront) emitReservationEvent(ack reservationAck) {
	s.emit("reservation_events", struct {
		baseEvent
		AckID      string `json:"ackId"`
		Customer   string `json:"customer"`
		Date       string `json:"date"`
		TimeSlot   string `json:"timeSlot"`
		Guests     int    `json:"guests"`
		LocationID string `json:"locationId"`
	}{
		baseEvent:  baseEvent{Timestamp: s.clock.Now().Unix(), EventType: "reservation_confirmed"},
		AckID:      ack.AckID,
		Customer:   ack.Form.CustomerName,
		Date:       ack.Form.Date,
		TimeSlot:   ack.Form.Time,
		Guests:     ack.Form.Guests,
		LocationID: ack.Form.Location,
	})
}

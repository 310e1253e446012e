// internal/writer/mqtt/publisher.go
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/sensor-dashboard/internal/availability"
)

const (
	publishTimeout       = 5 * time.Second
	connectRetryInterval = 10 * time.Second
)

// Config holds MQTT publisher configuration.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// state is what decides whether a result is worth publishing.
type state struct {
	sensors  bool
	specific bool
	source   availability.Source
}

// Publisher publishes availability results as retained JSON.
// Only changes of flags or source are published; cache-age drift is not.
type Publisher struct {
	mu    sync.Mutex
	send  func(payload []byte) error
	close func()
	last  *state
}

// New starts connecting to the broker and returns a publisher for cfg.Topic.
// An unreachable broker does not fail New; paho keeps retrying and
// publishes time out until it is up.
func New(cfg Config) (*Publisher, error) {
	if cfg.Broker == "" || cfg.Topic == "" {
		return nil, errors.New("writer mqtt: broker and topic required")
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(connectRetryInterval)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOnConnectHandler(func(paho.Client) {
		log.Printf("mqtt: connected (broker=%s)", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Printf("mqtt: connection lost (broker=%s): %v", cfg.Broker, err)
	})

	client := paho.NewClient(opts)

	// With ConnectRetry the token only completes once connected (or on Disconnect).
	token := client.Connect()
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Printf("mqtt: connect failed (broker=%s): %v", cfg.Broker, token.Error())
		}
	}()

	send := func(payload []byte) error {
		token := client.Publish(cfg.Topic, 1, true, payload)
		if !token.WaitTimeout(publishTimeout) {
			return fmt.Errorf("writer mqtt: publish %s: timeout", cfg.Topic)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("writer mqtt: publish %s: %w", cfg.Topic, err)
		}
		return nil
	}

	return newPublisher(send, func() { client.Disconnect(250) }), nil
}

func newPublisher(send func([]byte) error, closeFn func()) *Publisher {
	return &Publisher{send: send, close: closeFn}
}

// Write publishes res if its flags or source differ from the last
// successful publish. A failed publish is retried on the next result.
func (p *Publisher) Write(res availability.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := state{
		sensors:  res.Snapshot.SensorsAvailable,
		specific: res.Snapshot.SpecificAvailable,
		source:   res.Source,
	}
	if p.last != nil && *p.last == cur {
		return nil
	}

	payload, err := json.Marshal(res.View())
	if err != nil {
		return fmt.Errorf("writer mqtt: marshal: %w", err)
	}
	if err := p.send(payload); err != nil {
		return err
	}

	p.last = &cur
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}

package messaging

import (
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"smart-menu/internal/config"
	"smart-menu/internal/logger"
)

// Exchange and queue names used by the smart-menu services
const (
	OrdersExchange         = "orders_topic"
	OrderUpdatesExchange   = "order_updates_fanout"
	KitchenQueue           = "kitchen_queue"
	NotificationsQueue     = "notifications_queue"
	OrderCreatedRoutingKey = "kitchen.order.created"
)

// Connection wraps a RabbitMQ connection with reconnection logic
type Connection struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// New creates a new RabbitMQ connection and declares the topology
func New(cfg *config.Config, log *logger.Logger) (*Connection, error) {
	conn := &Connection{
		logger: log,
		url:    cfg.RabbitMQURL(),
	}

	if err := conn.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

// connect establishes the connection with retry logic
func (c *Connection) connect() error {
	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if setupErr := c.setupTopology(); setupErr != nil {
					c.logger.Error("rabbitmq_setup_failed", "startup", "Failed to set up topology", setupErr, nil)
					c.close()
					err = setupErr
				} else {
					return nil
				}
			} else {
				c.conn.Close()
			}
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed", "startup",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				err, nil)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// setupTopology declares exchanges, queues and bindings
func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(
		OrdersExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", OrdersExchange, err)
	}

	err = c.channel.ExchangeDeclare(
		OrderUpdatesExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", OrderUpdatesExchange, err)
	}

	_, err = c.channel.QueueDeclare(
		KitchenQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", KitchenQueue, err)
	}

	_, err = c.channel.QueueDeclare(
		NotificationsQueue,
		true,
		false,
		false,
		false,
		amqp091.Table{
			"x-message-ttl": 300000, // 5 minutes
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", NotificationsQueue, err)
	}

	if err := c.channel.QueueBind(KitchenQueue, "kitchen.*.*", OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", KitchenQueue, err)
	}

	if err := c.channel.QueueBind(NotificationsQueue, "", OrderUpdatesExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", NotificationsQueue, err)
	}

	return nil
}

// Channel returns the current channel
func (c *Connection) Channel() *amqp091.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// IsClosed reports whether the connection is closed
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect re-establishes a dropped connection
func (c *Connection) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.close()
	return c.connect()
}

// Close closes the channel and connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.close()
	return nil
}

func (c *Connection) close() {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp.Channel the mailer uses.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// amqpConnection is the subset of *amqp.Connection the mailer uses.
type amqpConnection interface {
	Channel() (amqpChannel, error)
	IsClosed() bool
	Close() error
}

type dialFunc func(url string) (amqpConnection, error)

type connection struct {
	*amqp.Connection
}

func (c connection) Channel() (amqpChannel, error) {
	return c.Connection.Channel()
}

func dialAMQP(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return connection{conn}, nil
}

// AMQPMailer publishes [models.MailMessage] documents to a durable queue.
// The connection is opened on first use and re-opened after a failure.
type AMQPMailer struct {
	cfg    config.Mail
	dial   dialFunc
	logger *logger.Logger

	mu     sync.Mutex
	conn   amqpConnection
	ch     amqpChannel
	closed bool
}

func NewAMQPMailer(cfg config.Mail, logger *logger.Logger) *AMQPMailer {
	return &AMQPMailer{
		cfg:    cfg,
		dial:   dialAMQP,
		logger: logger,
	}
}

func (m *AMQPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(models.MailMessage{
		From:     m.cfg.From,
		FromName: m.cfg.FromName,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		Created:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailPublish, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ch, err := m.channel()
	if err != nil {
		log.Err(err).Str("func", "*AMQPMailer.Send").Msg("failed to open amqp channel")
		return fmt.Errorf("%w: %w", ErrMailPublish, err)
	}

	err = ch.PublishWithContext(ctx,
		"",           // default exchange
		m.cfg.Queue,  // routing key = queue name
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		log.Err(err).Str("func", "*AMQPMailer.Send").Str("queue", m.cfg.Queue).Msg("failed to publish mail")
		m.reset()
		return fmt.Errorf("%w: %w", ErrMailPublish, err)
	}

	log.Debug().Str("func", "*AMQPMailer.Send").Str("queue", m.cfg.Queue).Msg("mail published")
	return nil
}

// Close releases the broker connection. Send fails afterwards.
func (m *AMQPMailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn, m.ch = nil, nil
	return err
}

// channel returns an open channel, dialing and declaring the queue when
// needed. m.mu must be held.
func (m *AMQPMailer) channel() (amqpChannel, error) {
	if m.closed {
		return nil, ErrMailerClosed
	}
	if m.ch != nil && !m.ch.IsClosed() {
		return m.ch, nil
	}

	if m.conn == nil || m.conn.IsClosed() {
		conn, err := m.dial(m.cfg.AMQPURL)
		if err != nil {
			return nil, fmt.Errorf("dial failed: %w", err)
		}
		m.conn = conn
	}

	ch, err := m.conn.Channel()
	if err != nil {
		m.reset()
		return nil, fmt.Errorf("channel open failed: %w", err)
	}

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(m.cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		m.reset()
		return nil, fmt.Errorf("queue declare failed: %w", err)
	}

	m.ch = ch
	return ch, nil
}

// reset drops the current connection so the next Send reconnects.
func (m *AMQPMailer) reset() {
	if m.ch != nil {
		_ = m.ch.Close()
	}
	if m.conn != nil {
		_ = m.conn.Close()
	}
	m.ch, m.conn = nil, nil
}

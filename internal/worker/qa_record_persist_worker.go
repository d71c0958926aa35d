package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"earnings-analyzer/internal/model"
)

// QARecordStore persists answered questions.
type QARecordStore interface {
	Create(record *model.QARecord) error
}

// QARecordPersistWorker drains the Q&A queue into the database.
type QARecordPersistWorker struct {
	conn      *amqp.Connection
	store     QARecordStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewQARecordPersistWorker(conn *amqp.Connection, store QARecordStore, queueName string) *QARecordPersistWorker {
	return &QARecordPersistWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *QARecordPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(d.Body); err != nil {
					log.Printf("worker persist qa record failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *QARecordPersistWorker) handle(body []byte) error {
	var record model.QARecord
	if err := json.Unmarshal(body, &record); err != nil {
		return fmt.Errorf("decode qa record failed: %w", err)
	}
	if record.TranscriptID == 0 || record.AnalystID == 0 {
		return fmt.Errorf("qa record missing transcript or analyst id")
	}
	record.ID = 0
	return w.store.Create(&record)
}

func (w *QARecordPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

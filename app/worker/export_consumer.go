// Package worker contains background consumers driven by the message queue
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
)

// ExportConsumer consumes playlist export requests, renders the playlist
// as JSON, and emails it to the requested address. Delivery is
// at-least-once: a message is acked only after the email went out, so a
// crash between send and ack can duplicate an email but never lose one.
type ExportConsumer struct {
	url          string
	queueName    string
	playlistRepo repository.PlaylistRepository
	songRepo     repository.SongRepository
	mail         services.MailService
	logger       *log.Logger
}

// NewExportConsumer constructs an ExportConsumer for the given AMQP URL
func NewExportConsumer(
	url, queueName string,
	playlistRepo repository.PlaylistRepository,
	songRepo repository.SongRepository,
	mail services.MailService,
) *ExportConsumer {
	if queueName == "" {
		queueName = businessflow.ExportQueueName
	}
	return &ExportConsumer{
		url:          url,
		queueName:    queueName,
		playlistRepo: playlistRepo,
		songRepo:     songRepo,
		mail:         mail,
		logger:       log.Default(),
	}
}

// Start launches the consumer loop in a background goroutine and returns
// a stop function. Broker failures are retried with a flat backoff so a
// broker restart does not kill the worker.
func (w *ExportConsumer) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		for {
			if err := w.consume(ctx); err != nil {
				w.logger.Printf("export consumer: %v", err)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()

	return cancel
}

// consume opens a connection and processes deliveries until the channel
// closes or the context is cancelled
func (w *ExportConsumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open broker channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", w.queueName, err)
	}

	// One unacked message at a time keeps redelivery ordering simple
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Printf("export consumer: waiting for messages on %s", w.queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handleDelivery(ctx, delivery)
		}
	}
}

// handleDelivery processes one export request. Malformed messages are
// rejected without requeue; transient failures are requeued.
func (w *ExportConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var message dto.ExportMessage
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		w.logger.Printf("export consumer: dropping malformed message: %v", err)
		if err := delivery.Nack(false, false); err != nil {
			w.logger.Printf("export consumer: nack failed: %v", err)
		}
		return
	}

	if err := w.export(ctx, message); err != nil {
		w.logger.Printf("export consumer: export of playlist %s failed, requeueing: %v", message.PlaylistID, err)
		if err := delivery.Nack(false, true); err != nil {
			w.logger.Printf("export consumer: nack failed: %v", err)
		}
		return
	}

	if err := delivery.Ack(false); err != nil {
		w.logger.Printf("export consumer: ack failed: %v", err)
		return
	}
	w.logger.Printf("export consumer: exported playlist %s to %s", message.PlaylistID, message.TargetEmail)
}

// export renders the playlist snapshot and emails it
func (w *ExportConsumer) export(ctx context.Context, message dto.ExportMessage) error {
	playlist, err := w.playlistRepo.ByID(ctx, message.PlaylistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	if playlist == nil {
		// Deleted between request and processing; nothing to export
		return nil
	}

	songs, err := w.songRepo.ByPlaylistID(ctx, message.PlaylistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist songs: %w", err)
	}

	document := dto.ExportedPlaylist{
		Playlist: dto.ExportedPlaylistBody{
			ID:    playlist.ID,
			Name:  playlist.Name,
			Songs: toSongListItems(songs),
		},
	}

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render playlist: %w", err)
	}

	subject := fmt.Sprintf("Playlist export: %s", playlist.Name)
	body := fmt.Sprintf("Attached is the exported playlist %q.", playlist.Name)
	if err := w.mail.SendJSONAttachment(message.TargetEmail, subject, body, "playlist.json", payload); err != nil {
		return err
	}
	return nil
}

func toSongListItems(songs []*models.Song) []dto.SongListItem {
	items := make([]dto.SongListItem, 0, len(songs))
	for _, song := range songs {
		items = append(items, dto.SongListItem{
			ID:        song.ID,
			Title:     song.Title,
			Performer: song.Performer,
		})
	}
	return items
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tnqbao/gau-media-service/config"
	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/infra/produce"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

// MediaConsumer applies upload-state messages published by the transcoding
// stack. Messages cross a broker and stay untrusted, so the HMAC signature is
// verified exactly like on the HTTP webhook.
type MediaConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
	config     *config.Config
}

func NewMediaConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository, cfg *config.Config) *MediaConsumer {
	return &MediaConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
		config:     cfg,
	}
}

func (c *MediaConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.UpdateStateQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register update state consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Media Consumer] Started listening for state updates on queue: %s", produce.UpdateStateQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Media Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Channel closed")
					return
				}
				c.handleUpdateState(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *MediaConsumer) handleUpdateState(ctx context.Context, msg amqp.Delivery) {
	var payload produce.UpdateStateMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Media Consumer] Failed to unmarshal message")
		_ = msg.Nack(false, false)
		return
	}

	key, err := utils.ParseKey(payload.Key)
	if err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Dropped message with invalid key %s", payload.Key)
		_ = msg.Nack(false, false)
		return
	}

	state := entity.UploadState(payload.State)
	if !state.Notifiable() {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Dropped message with invalid state %s", payload.State)
		_ = msg.Nack(false, false)
		return
	}

	if err := utils.VerifyNotificationSignature(payload.Key, payload.State, payload.ExtraParameters, payload.Signature, c.config.EnvConfig.UpdateStateSecrets); err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Dropped message with invalid signature for key %s", payload.Key)
		_ = msg.Nack(false, false)
		return
	}

	resolutions, err := payload.Resolutions()
	if err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Dropped message with invalid resolutions for key %s", payload.Key)
		_ = msg.Nack(false, false)
		return
	}
	extension, err := payload.Extension()
	if err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Dropped message with invalid extension for key %s", payload.Key)
		_ = msg.Nack(false, false)
		return
	}

	err = c.repository.ApplyUploadState(key, state, repository.UploadStateExtra{
		Resolutions: resolutions,
		Extension:   extension,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] No %s with id %s, dropping message", key.Model, key.ObjectID)
			_ = msg.Nack(false, false)
			return
		}
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Media Consumer] Failed to apply state %s to key %s", payload.State, payload.Key)
		_ = msg.Nack(false, true) // Requeue
		return
	}

	if err := c.infra.Redis.Delete(ctx,
		fmt.Sprintf("media:representation:%s:%s", key.Model, key.ObjectID),
		fmt.Sprintf("media:representation:%s:%s", utils.KeyModelVideo, key.OwnerID),
	); err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Failed to invalidate cached representations for %s: %v", payload.Key, err)
	}

	if err := c.infra.Produce.MediaService.PublishStateChanged(ctx, produce.StateChangedMessage{
		Model:    key.Model,
		ObjectID: key.ObjectID.String(),
		State:    payload.State,
		Stamp:    key.Stamp,
	}); err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Failed to publish state change for %s: %v", payload.Key, err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Media Consumer] Applied state %s to %s %s", payload.State, key.Model, key.ObjectID)
	_ = msg.Ack(false)
}

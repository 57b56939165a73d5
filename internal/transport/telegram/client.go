package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/retry"
)

// Client оборачивает Bot API под контракт transport.Client
type Client struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
}

func NewClient(api *tgbotapi.BotAPI) *Client {
	return &Client{api: api, httpClient: &http.Client{}}
}

func (client *Client) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	return retry.DoRetryWithResult(ctx, func() (int, error) {
		msg, err := client.api.Send(tgbotapi.NewMessage(chatID, text))
		if err != nil {
			return 0, fmt.Errorf("send message to %d: %w", chatID, err)
		}
		return msg.MessageID, nil
	}, retry.TransportRetryConfig)
}

func (client *Client) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) (int, error) {
	return retry.DoRetryWithResult(ctx, func() (int, error) {
		photoMsg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "photo", Bytes: photo})
		photoMsg.Caption = caption
		msg, err := client.api.Send(photoMsg)
		if err != nil {
			return 0, fmt.Errorf("send photo to %d: %w", chatID, err)
		}
		return msg.MessageID, nil
	}, retry.TransportRetryConfig)
}

// SendPhotoByFileID переотправляет уже загруженное в чат фото по его file id
func (client *Client) SendPhotoByFileID(ctx context.Context, chatID int64, fileID, caption string) (int, error) {
	return retry.DoRetryWithResult(ctx, func() (int, error) {
		photoMsg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		photoMsg.Caption = caption
		msg, err := client.api.Send(photoMsg)
		if err != nil {
			return 0, fmt.Errorf("send photo %s to %d: %w", fileID, chatID, err)
		}
		return msg.MessageID, nil
	}, retry.TransportRetryConfig)
}

func (client *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := client.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err != nil {
		return fmt.Errorf("delete message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

// DownloadFile забирает вложение с серверов Telegram в память
func (client *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	return retry.DoRetryWithResult(ctx, func() ([]byte, error) {
		url, err := client.api.GetFileDirectURL(fileID)
		if err != nil {
			return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download file %s: %w", fileID, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}, retry.TransportRetryConfig)
}

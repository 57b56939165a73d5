package transport

import "context"

// Client — контракт с чат-платформой: отправка и удаление сообщений,
// получение вложений. Возвращаемый id сообщения используется как
// корреляционный для ответов менеджера.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) (int, error)
	SendPhotoByFileID(ctx context.Context, chatID int64, fileID, caption string) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

package services

import (
	"context"

	"ipay/entity"
)

type Database interface {
	WriteLogMessage(ctx context.Context, data Data) error

	SaveTransaction(ctx context.Context, record *entity.TransactionRecord) error
	GetTransaction(ctx context.Context, orderId string) (*entity.TransactionRecord, error)

	SaveNotification(ctx context.Context, notification *entity.Notification) error
}

type Data interface {
	DataType() string
}

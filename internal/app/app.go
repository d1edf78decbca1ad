package app

import (
	"context"

	"github.com/bunchhieng/linkvault/internal/config"
	"github.com/bunchhieng/linkvault/internal/linkstore"
	"github.com/bunchhieng/linkvault/internal/storage"
	"go.uber.org/zap"
)

// NewStorage opens the key-value store at dbPath, or at the default path when
// dbPath is empty.
func NewStorage(dbPath string) (storage.KV, error) {
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return storage.NewSQLiteKV(dbPath)
}

// OpenStore wires a link store onto kv. The caller owns kv and closes it.
func OpenStore(ctx context.Context, kv storage.KV, log *zap.Logger) *linkstore.Store {
	if in, ok := kv.(storage.Inspector); ok {
		logContents(ctx, in, log)
	}
	gateway := storage.NewGateway(kv, log)
	return linkstore.Open(ctx, gateway, linkstore.WithLogger(log))
}

// logContents reports each stored key and its last write at debug level.
func logContents(ctx context.Context, in storage.Inspector, log *zap.Logger) {
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}
	keys, err := in.Keys(ctx)
	if err != nil {
		log.Debug("list stored keys", zap.Error(err))
		return
	}
	for _, key := range keys {
		updated, err := in.UpdatedAt(ctx, key)
		if err != nil {
			log.Debug("stored key", zap.String("key", key), zap.Error(err))
			continue
		}
		log.Debug("stored key", zap.String("key", key), zap.Time("updated_at", updated))
	}
}

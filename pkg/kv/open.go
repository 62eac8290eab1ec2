package kv

import (
	"fmt"

	"github.com/JayR61/congregation-connect/pkg/config"
)

// Open builds the backend named by cfg.Store.Driver.
func Open(cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Store.Driver {
	case "", config.StoreDriverMemory:
		store = NewMemoryStore()
	case config.StoreDriverFile:
		store, err = NewFileStore(cfg.Store.FileDir)
	case config.StoreDriverRedis:
		client, cerr := NewRedisClient(cfg.Redis)
		if cerr != nil {
			return nil, fmt.Errorf("connect redis: %w", cerr)
		}
		store = NewRedisStore(client)
	case config.StoreDriverPostgres:
		store, err = OpenPostgres(cfg.Database)
	case config.StoreDriverSQLite:
		store, err = OpenSQLite(cfg.Store.SQLitePath)
	case config.StoreDriverMongo:
		store, err = OpenMongo(cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	return WithPrefix(store, cfg.Store.KeyPrefix), nil
}

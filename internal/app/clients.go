package app

import (
	redisclient "github.com/yungbote/advisorgraph-backend/internal/clients/redis"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
	"github.com/yungbote/advisorgraph-backend/internal/platform/neo4jdb"
)

// Clients holds the external collaborators. Any of them may be nil when its
// backing store is not configured; the services degrade accordingly.
type Clients struct {
	Neo4j *neo4jdb.Client
	Cache redisclient.Cache
}

func wireClients(log *logger.Logger) (Clients, error) {
	neo4j, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return Clients{}, err
	}

	cache, err := redisclient.NewCache(log)
	if err != nil {
		log.Warn("redis init failed, filter-option caching disabled", "error", err)
		cache = nil
	}

	return Clients{Neo4j: neo4j, Cache: cache}, nil
}

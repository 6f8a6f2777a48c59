package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a miniredis server shared by every scenario.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var redisOnce sync.Once
var redisConn *Redis

func NewRedis() *Redis {
	redisOnce.Do(
		func() {
			server, err := miniredis.Run()
			if err != nil {
				panic(err)
			}
			redisConn = &Redis{
				Server: server,
				Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			}
		},
	)

	return redisConn
}

func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.TODO()).Err()
}

// Keys lists the cached keys matching pattern.
func (r *Redis) Keys(pattern string) ([]string, error) {
	return r.Client.Keys(context.TODO(), pattern).Result()
}

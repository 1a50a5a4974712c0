package store

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// RedisStats keeps cross-match win/loss tallies per agent name in a Redis
// hash, so standings survive server restarts.
type RedisStats struct {
	pool *redis.Pool
}

func NewRedisStats(addr string) *RedisStats {
	pool := &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", addr) },
	}
	return &RedisStats{pool: pool}
}

func (s *RedisStats) Close() error {
	return s.pool.Close()
}

func (s *RedisStats) RecordResult(playerName string, won bool) error {
	conn := s.pool.Get()
	defer conn.Close()

	key := "agent:" + playerName
	if _, err := conn.Do("HINCRBY", key, "games", 1); err != nil {
		return err
	}
	if won {
		if _, err := conn.Do("HINCRBY", key, "wins", 1); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStats) Record(playerName string) (games int, wins int, err error) {
	conn := s.pool.Get()
	defer conn.Close()

	key := "agent:" + playerName
	games, err = redis.Int(conn.Do("HGET", key, "games"))
	if err == redis.ErrNil {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	wins, err = redis.Int(conn.Do("HGET", key, "wins"))
	if err == redis.ErrNil {
		return games, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return games, wins, nil
}

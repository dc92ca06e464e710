// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/menu-vote/models"
	"github.com/redis/go-redis/v9"
)

// RedisVoteStore keeps votes in Redis. Per sheet there is a hash of
// voter key -> vote JSON and a list holding voter keys in first-vote order.
type RedisVoteStore struct {
	client *redis.Client
	prefix string
}

// upsertScript writes the vote and appends the voter to the order list only
// when the voter had no vote yet. Returns 1 for a new vote, 0 for a replacement.
//
// KEYS: votes hash, order list, event sheet set, event index set
// ARGV: voter key, vote JSON, sheet name, event id
var upsertScript = redis.NewScript(`
local existed = redis.call('HEXISTS', KEYS[1], ARGV[1])
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
if existed == 0 then
  redis.call('RPUSH', KEYS[2], ARGV[1])
end
redis.call('SADD', KEYS[3], ARGV[3])
redis.call('SADD', KEYS[4], ARGV[4])
if existed == 0 then
  return 1
end
return 0
`)

// NewRedisVoteStore connects to Redis and verifies the connection
func NewRedisVoteStore(redisURL string) (*RedisVoteStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisVoteStoreWithClient(client), nil
}

// NewRedisVoteStoreWithClient creates a store from an existing Redis client
func NewRedisVoteStoreWithClient(client *redis.Client) *RedisVoteStore {
	return &RedisVoteStore{
		client: client,
		prefix: "menuvote:",
	}
}

func (s *RedisVoteStore) Close() error {
	return s.client.Close()
}

func (s *RedisVoteStore) votesKey(eventID, sheet string) string {
	return s.prefix + "votes:" + eventID + ":" + sheet
}

func (s *RedisVoteStore) orderKey(eventID, sheet string) string {
	return s.prefix + "order:" + eventID + ":" + sheet
}

func (s *RedisVoteStore) sheetsKey(eventID string) string {
	return s.prefix + "sheets:" + eventID
}

func (s *RedisVoteStore) eventsKey() string {
	return s.prefix + "events"
}

func (s *RedisVoteStore) UpsertVote(ctx context.Context, eventID, sheetName, voterKey string, vote models.Vote) (bool, error) {
	data, err := json.Marshal(vote)
	if err != nil {
		return false, fmt.Errorf("marshal vote: %w", err)
	}

	keys := []string{
		s.votesKey(eventID, sheetName),
		s.orderKey(eventID, sheetName),
		s.sheetsKey(eventID),
		s.eventsKey(),
	}
	created, err := upsertScript.Run(ctx, s.client, keys, voterKey, string(data), sheetName, eventID).Int()
	if err != nil {
		return false, fmt.Errorf("upsert vote: %w", err)
	}
	return created == 1, nil
}

func (s *RedisVoteStore) ListVotes(ctx context.Context, eventID, sheetName string) ([]models.Vote, error) {
	order, err := s.client.LRange(ctx, s.orderKey(eventID, sheetName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list vote order: %w", err)
	}

	votes := []models.Vote{}
	if len(order) == 0 {
		return votes, nil
	}

	raw, err := s.client.HMGet(ctx, s.votesKey(eventID, sheetName), order...).Result()
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	for _, r := range raw {
		str, ok := r.(string)
		if !ok {
			continue
		}
		var vote models.Vote
		if err := json.Unmarshal([]byte(str), &vote); err != nil {
			return nil, fmt.Errorf("unmarshal vote: %w", err)
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

func (s *RedisVoteStore) ListVoterVotes(ctx context.Context, eventID, voterKey string) (map[string]models.Vote, error) {
	sheets, err := s.client.SMembers(ctx, s.sheetsKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}

	out := make(map[string]models.Vote)
	for _, sheet := range sheets {
		str, err := s.client.HGet(ctx, s.votesKey(eventID, sheet), voterKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load vote: %w", err)
		}

		var vote models.Vote
		if err := json.Unmarshal([]byte(str), &vote); err != nil {
			return nil, fmt.Errorf("unmarshal vote: %w", err)
		}
		out[sheet] = vote
	}
	return out, nil
}

func (s *RedisVoteStore) ClearVotes(ctx context.Context, eventID string) error {
	sheets, err := s.client.SMembers(ctx, s.sheetsKey(eventID)).Result()
	if err != nil {
		return fmt.Errorf("list sheets: %w", err)
	}

	keys := []string{s.sheetsKey(eventID)}
	for _, sheet := range sheets {
		keys = append(keys, s.votesKey(eventID, sheet), s.orderKey(eventID, sheet))
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.SRem(ctx, s.eventsKey(), eventID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear votes: %w", err)
	}
	return nil
}

func (s *RedisVoteStore) ClearAllVotes(ctx context.Context) error {
	events, err := s.client.SMembers(ctx, s.eventsKey()).Result()
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	for _, eventID := range events {
		if err := s.ClearVotes(ctx, eventID); err != nil {
			return err
		}
	}
	return nil
}

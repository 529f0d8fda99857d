package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_models "fitflow/models/redis"
	redis_utils "fitflow/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// Snapshot lifetimes. Rooms die with their last member anyway, the TTL just
// guards against leaked keys when a process is killed mid-game.
const (
	challengeRoomTTL = 6 * time.Hour
	workoutPlanTTL   = 24 * time.Hour
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveChallengeRoom stores the live state of a challenge room.
// Key format: "challenge_room:{roomId}"
func (rc *RedisClient) SaveChallengeRoom(room *redis_models.ChallengeRoom) error {
	key := redis_utils.FormatChallengeRoomKey(room.RoomID)
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling challenge room: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, challengeRoomTTL).Err()
}

// GetChallengeRoom retrieves the live state of a challenge room.
// Returns (nil, nil) when the key does not exist.
func (rc *RedisClient) GetChallengeRoom(roomID string) (*redis_models.ChallengeRoom, error) {
	key := redis_utils.FormatChallengeRoomKey(roomID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting challenge room: %v", err)
	}

	var room redis_models.ChallengeRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling challenge room: %v", err)
	}
	return &room, nil
}

// DeleteChallengeRoom removes the live state of a challenge room.
func (rc *RedisClient) DeleteChallengeRoom(roomID string) error {
	key := redis_utils.FormatChallengeRoomKey(roomID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting challenge room: %v", err)
	}
	return nil
}

// UpdateRepCount records the latest rep count reported by a player in a room.
// Missing snapshots are a no-op: the game can outlive the TTL, the authoritative
// result goes through Postgres regardless.
func (rc *RedisClient) UpdateRepCount(roomID, email string, count int) error {
	room, err := rc.GetChallengeRoom(roomID)
	if err != nil || room == nil {
		return err
	}
	if room.RepCounts == nil {
		room.RepCounts = make(map[string]int)
	}
	room.RepCounts[email] = count
	return rc.SaveChallengeRoom(room)
}

// CacheWorkoutPlan caches a generated plan document for a user.
// Key format: "workout_plan:{email}"
func (rc *RedisClient) CacheWorkoutPlan(email string, plan []byte) error {
	key := redis_utils.FormatWorkoutPlanKey(email)
	if err := rc.client.Set(rc.ctx, key, plan, workoutPlanTTL).Err(); err != nil {
		return fmt.Errorf("error caching workout plan: %v", err)
	}
	return nil
}

// GetCachedWorkoutPlan returns the cached plan document, or (nil, nil) on a miss.
func (rc *RedisClient) GetCachedWorkoutPlan(email string) ([]byte, error) {
	key := redis_utils.FormatWorkoutPlanKey(email)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting cached workout plan: %v", err)
	}
	return data, nil
}

// InvalidateWorkoutPlan drops the cached plan, used after profile updates.
func (rc *RedisClient) InvalidateWorkoutPlan(email string) error {
	return rc.client.Del(rc.ctx, redis_utils.FormatWorkoutPlanKey(email)).Err()
}

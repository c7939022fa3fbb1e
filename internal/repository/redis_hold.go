package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cinereserve/cinereserve/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisHoldStore keeps seat holds in Redis. Each hold is two keys sharing one
// TTL: a lock key per (showing, seat) whose existence is the exclusivity
// check, and a record key per hold ID carrying the hold itself. A per-showing
// set tracks which seats may be held; set members outrun their locks when a
// hold expires, so every reader treats a missing lock as "not held" and prunes
// the set as it goes.
type RedisHoldStore struct {
	client redis.UniversalClient
}

func NewRedisHoldStore(client redis.UniversalClient) *RedisHoldStore {
	return &RedisHoldStore{
		client: client,
	}
}

// acquireScript claims every requested seat or none of them. Lock and record
// keys are written with the same TTL in the same script invocation, so a hold
// record exists exactly as long as its lock does.
var acquireScript = redis.NewScript(`
	-- KEYS = [n lock keys..., n record keys..., set key]
	-- ARGV = [holder, ttl millis, n seats..., n record payloads...]

	local n = (#KEYS - 1) / 2
	local conflicts = {}

	for i = 1, n do
		if redis.call("EXISTS", KEYS[i]) == 1 then
			conflicts[#conflicts + 1] = ARGV[2 + i]
		end
	end

	if #conflicts > 0 then
		return conflicts
	end

	for i = 1, n do
		redis.call("SET", KEYS[i], ARGV[1], "PX", ARGV[2])
		redis.call("SET", KEYS[n + i], ARGV[2 + n + i], "PX", ARGV[2])
		redis.call("SADD", KEYS[2 * n + 1], ARGV[2 + i])
	end

	return {}
`)

// releaseScript deletes one hold, guarded by its record still existing. Once
// the record is gone the seat may already belong to someone else, so the lock
// must not be touched.
var releaseScript = redis.NewScript(`
	-- KEYS = [record key, lock key, set key]
	-- ARGV = [seat]

	if redis.call("EXISTS", KEYS[1]) == 0 then
		return 0
	end

	redis.call("DEL", KEYS[1], KEYS[2])
	redis.call("SREM", KEYS[3], ARGV[1])

	return 1
`)

// heldSeatsScript walks a showing's seat set, drops members whose locks have
// expired, and returns alternating seat, holder pairs for the live ones.
var heldSeatsScript = redis.NewScript(`
	local setKey = KEYS[1]
	local showingId = ARGV[1]
	local cursor = "0"
	local expired = {}
	local live = {}

	repeat
		local result = redis.call("SSCAN", setKey, cursor, "COUNT", 100)
		cursor = result[1]

		for _, seat in ipairs(result[2]) do
			local holder = redis.call("GET", "seat_hold:" .. showingId .. ":" .. seat)
			if holder then
				live[#live + 1] = seat
				live[#live + 1] = holder
			else
				expired[#expired + 1] = seat
			end
		end
	until cursor == "0"

	if #expired > 0 then
		redis.call("SREM", setKey, unpack(expired))
	end

	return live
`)

// pruneScript is the sweep-only variant of heldSeatsScript: it removes stale
// set members and reports how many it dropped.
var pruneScript = redis.NewScript(`
	local setKey = KEYS[1]
	local showingId = ARGV[1]
	local cursor = "0"
	local expired = {}

	repeat
		local result = redis.call("SSCAN", setKey, cursor, "COUNT", 100)
		cursor = result[1]

		for _, seat in ipairs(result[2]) do
			if redis.call("EXISTS", "seat_hold:" .. showingId .. ":" .. seat) == 0 then
				expired[#expired + 1] = seat
			end
		end
	until cursor == "0"

	if #expired > 0 then
		redis.call("SREM", setKey, unpack(expired))
	end

	return #expired
`)

func (s *RedisHoldStore) Acquire(
	ctx context.Context,
	showingID int,
	seats []string,
	holderID string,
	ttl time.Duration) ([]domain.SeatHold, error) {

	if len(seats) == 0 {
		return nil, domain.ErrEmptySelection
	}

	now := time.Now()
	holds := make([]domain.SeatHold, len(seats))

	n := len(seats)
	keys := make([]string, 0, 2*n+1)
	argv := make([]interface{}, 0, 2*n+2)
	argv = append(argv, holderID, ttl.Milliseconds())

	for i, seat := range seats {
		holds[i] = domain.SeatHold{
			ID:        uuid.New().String(),
			ShowingID: showingID,
			Seat:      seat,
			HolderID:  holderID,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		}
		keys = append(keys, seatLockKey(showingID, seat))
	}

	for i := range holds {
		keys = append(keys, holdRecordKey(holds[i].ID))
	}
	keys = append(keys, seatSetKey(showingID))

	for _, seat := range seats {
		argv = append(argv, seat)
	}

	for i := range holds {
		payload, err := json.Marshal(holds[i])
		if err != nil {
			return nil, err
		}
		argv = append(argv, payload)
	}

	conflicts, err := acquireScript.Run(ctx, s.client, keys, argv...).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to run seat hold acquire script: %w", err)
	}

	if len(conflicts) > 0 {
		return nil, &domain.SeatUnavailableError{Seats: conflicts}
	}

	return holds, nil
}

func (s *RedisHoldStore) Release(ctx context.Context, holdIDs []string) error {
	holds, err := s.GetByIds(ctx, holdIDs)
	if err != nil {
		return err
	}

	for _, hold := range holds {
		keys := []string{
			holdRecordKey(hold.ID),
			seatLockKey(hold.ShowingID, hold.Seat),
			seatSetKey(hold.ShowingID),
		}

		err = releaseScript.Run(ctx, s.client, keys, hold.Seat).Err()
		if err != nil {
			return fmt.Errorf("failed to release hold %s: %w", hold.ID, err)
		}
	}

	return nil
}

func (s *RedisHoldStore) GetByIds(ctx context.Context, holdIDs []string) ([]domain.SeatHold, error) {
	if len(holdIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(holdIDs))
	for i, id := range holdIDs {
		keys[i] = holdRecordKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	holds := make([]domain.SeatHold, 0, len(values))

	for _, v := range values {
		payload, ok := v.(string)
		if !ok {
			// Expired or never existed.
			continue
		}

		var hold domain.SeatHold
		if err := json.Unmarshal([]byte(payload), &hold); err != nil {
			return nil, fmt.Errorf("corrupt hold record: %w", err)
		}

		holds = append(holds, hold)
	}

	return holds, nil
}

func (s *RedisHoldStore) HeldSeats(ctx context.Context, showingID int) (map[string]string, error) {
	pairs, err := heldSeatsScript.Run(ctx, s.client, []string{seatSetKey(showingID)}, showingID).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to run held seats script: %w", err)
	}

	held := make(map[string]string, len(pairs)/2)

	for i := 0; i+1 < len(pairs); i += 2 {
		held[pairs[i]] = pairs[i+1]
	}

	return held, nil
}

func (s *RedisHoldStore) PruneExpired(ctx context.Context) (int, error) {
	pruned := 0

	iter := s.client.Scan(ctx, 0, "show_holds:*", 100).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()

		showingID, err := showingIDFromSetKey(setKey)
		if err != nil {
			continue
		}

		removed, err := pruneScript.Run(ctx, s.client, []string{setKey}, showingID).Int()
		if err != nil {
			return pruned, fmt.Errorf("failed to prune %s: %w", setKey, err)
		}

		pruned += removed
	}

	if err := iter.Err(); err != nil {
		return pruned, err
	}

	return pruned, nil
}

func seatLockKey(showingID int, seat string) string {
	return fmt.Sprintf("seat_hold:%d:%s", showingID, seat)
}

func holdRecordKey(holdID string) string {
	return fmt.Sprintf("hold:%s", holdID)
}

func seatSetKey(showingID int) string {
	return fmt.Sprintf("show_holds:%d", showingID)
}

func showingIDFromSetKey(key string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(key, "show_holds:"))
}

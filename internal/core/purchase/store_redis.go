// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openreader/storefront/internal/platform/constants"
)

// Hash fields of a purchase record.
const (
	fieldPurchased   = "purchased"
	fieldPaymentID   = "paymentId"
	fieldPurchasedAt = "purchasedAt"
)

// RedisStore keeps one hash per book plus a sorted index of purchased ids,
// scored by first purchase time.
type RedisStore struct {
	client *redis.Client
	now    Clock
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: systemClock}
}

func recordKey(bookID string) string {
	return constants.RedisPrefixPurchase + bookID
}

func (store *RedisStore) GetPurchased(context context.Context, bookID string) (bool, error) {
	value, err := store.client.HGet(context, recordKey(bookID), fieldPurchased).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_purchase_get_failed: %w", err)
	}
	return value == "1", nil
}

func (store *RedisStore) GetPurchaseDetails(context context.Context, bookID string) (*Details, error) {
	fields, err := store.client.HGetAll(context, recordKey(bookID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_purchase_details_failed: %w", err)
	}

	record, ok := decodeHash(bookID, fields)
	if !ok {
		return nil, nil
	}
	return record.details(), nil
}

/*
SetPurchased writes the record and indexes it in one MULTI/EXEC block.

The index keeps the score of the first purchase so listings stay in
first-purchase order across re-confirmations.
*/
func (store *RedisStore) SetPurchased(context context.Context, bookID, paymentID string) error {
	purchasedAt := store.now()

	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.HSet(context, recordKey(bookID),
			fieldPurchased, "1",
			fieldPaymentID, paymentID,
			fieldPurchasedAt, purchasedAt.Format(time.RFC3339Nano),
		)
		pipe.ZAddNX(context, constants.RedisKeyPurchaseIndex, redis.Z{
			Score:  float64(purchasedAt.UnixMilli()),
			Member: bookID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_purchase_set_failed: %w", err)
	}

	return nil
}

func (store *RedisStore) ListPurchasedBooks(context context.Context) ([]Record, error) {
	bookIDs, err := store.client.ZRange(context, constants.RedisKeyPurchaseIndex, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_purchase_index_failed: %w", err)
	}

	records := make([]Record, 0, len(bookIDs))
	if len(bookIDs) == 0 {
		return records, nil
	}

	commands := make([]*redis.MapStringStringCmd, len(bookIDs))
	_, err = store.client.Pipelined(context, func(pipe redis.Pipeliner) error {
		for index, bookID := range bookIDs {
			commands[index] = pipe.HGetAll(context, recordKey(bookID))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis_purchase_list_failed: %w", err)
	}

	for index, command := range commands {
		if record, ok := decodeHash(bookIDs[index], command.Val()); ok {
			records = append(records, record)
		}
	}

	return records, nil
}

// decodeHash turns a record hash into a [Record]; ok is false for missing or
// unpurchased records.
func decodeHash(bookID string, fields map[string]string) (Record, bool) {
	if fields[fieldPurchased] != "1" {
		return Record{}, false
	}

	record := Record{BookID: bookID, Purchased: true, PaymentID: fields[fieldPaymentID]}
	if raw := fields[fieldPurchasedAt]; raw != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			record.PurchasedAt = &parsed
		}
	}

	return record, true
}

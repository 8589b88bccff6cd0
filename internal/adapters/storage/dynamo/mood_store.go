package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

type moodRecord struct {
	UserKey   string `dynamodbav:"userId"`
	SortKey   string `dynamodbav:"sk"`
	MoodValue int    `dynamodbav:"moodValue"`
	Notes     string `dynamodbav:"notes"`
	Type      string `dynamodbav:"type"`
}

// MoodStore implements domain.MoodStore over the paginated client.
type MoodStore struct {
	client *Client
}

func NewMoodStore(client *Client) *MoodStore {
	return &MoodStore{client: client}
}

func (s *MoodStore) Append(ctx context.Context, entry *domain.MoodEntry) error {
	item, err := attributevalue.MarshalMap(moodRecord{
		UserKey:   entry.UserKey,
		SortKey:   entry.SortKey,
		MoodValue: entry.Mood,
		Notes:     entry.Notes,
		Type:      entry.Type,
	})
	if err != nil {
		return fmt.Errorf("marshal mood record: %w", err)
	}
	return s.client.PutItem(ctx, item)
}

// ListRecent queries the user's mood range newest first. The query Limit is
// a page size, so the total is capped again while draining the iterator.
func (s *MoodStore) ListRecent(ctx context.Context, userKey string, limit int) ([]*domain.MoodEntry, error) {
	forward := false
	it := s.client.Query(ctx, QueryInput{
		KeyConditionExpression: "userId = :uid AND begins_with(sk, :prefix)",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":    &types.AttributeValueMemberS{Value: userKey},
			":prefix": &types.AttributeValueMemberS{Value: domain.MoodKeyPrefix},
		},
		Limit:            int32(limit),
		ScanIndexForward: &forward,
	})

	var out []*domain.MoodEntry
	for {
		item, err := it.Next()
		if errors.Is(err, Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec moodRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal mood record: %w", err)
		}
		out = append(out, &domain.MoodEntry{
			UserKey: rec.UserKey,
			SortKey: rec.SortKey,
			Mood:    rec.MoodValue,
			Notes:   rec.Notes,
			Type:    rec.Type,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ListUserKeys scans the mood records projecting only the partition key and
// dedupes. Any user with at least one logged mood is included.
func (s *MoodStore) ListUserKeys(ctx context.Context) ([]string, error) {
	it := s.client.Scan(ctx, ScanInput{
		ProjectionExpression: "userId",
		FilterExpression:     "begins_with(sk, :prefix)",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: domain.MoodKeyPrefix},
		},
	})

	seen := make(map[string]struct{})
	var keys []string
	for {
		item, err := it.Next()
		if errors.Is(err, Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec struct {
			UserKey string `dynamodbav:"userId"`
		}
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal user key: %w", err)
		}
		if rec.UserKey == "" {
			continue
		}
		if _, ok := seen[rec.UserKey]; ok {
			continue
		}
		seen[rec.UserKey] = struct{}{}
		keys = append(keys, rec.UserKey)
	}
	return keys, nil
}

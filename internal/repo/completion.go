package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/habits-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupCompletion builds the per-member summary for one day. The reads are
// separate queries and are not isolated from concurrent writes.
func (s *Store) GroupCompletion(ctx context.Context, groupID primitive.ObjectID, day time.Time) ([]domain.MemberCompletion, error) {
	g, err := s.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.FindUsersByIDs(ctx, g.MemberIDs)
	if err != nil {
		return nil, err
	}
	habits, err := s.HabitsForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	entries, err := s.GroupEntriesOn(ctx, groupID, day)
	if err != nil {
		return nil, err
	}
	return domain.SummarizeCompletion(members, len(habits), entries), nil
}

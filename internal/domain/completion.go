package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// SummarizeCompletion counts, per member, the distinct habits they confirmed
// in entries. Confirming one habit twice counts once.
func SummarizeCompletion(members []User, totalHabits int, entries []GroupHabitEntry) []MemberCompletion {
	done := make(map[primitive.ObjectID]map[primitive.ObjectID]struct{}, len(members))
	for _, e := range entries {
		for _, uid := range e.CheckedBy {
			set, ok := done[uid]
			if !ok {
				set = make(map[primitive.ObjectID]struct{})
				done[uid] = set
			}
			set[e.HabitID] = struct{}{}
		}
	}

	out := make([]MemberCompletion, 0, len(members))
	for _, m := range members {
		out = append(out, MemberCompletion{
			User:                 m,
			CompletedGroupHabits: len(done[m.ID]),
			TotalGroupHabits:     totalHabits,
		})
	}
	return out
}

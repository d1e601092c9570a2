package musicianRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gigmatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FindMusiciansByInstrument runs one aggregation: instrument/status match,
// then a $lookup that attaches every non-closed event assigned to the musician
// as a commitment. Which commitments actually block is decided by the caller.
func (r *MongoMusicianRepo) FindMusiciansByInstrument(ctx context.Context, instrument string, activeOnly bool) ([]models.MusicianProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := candidatePipeline(instrument, activeOnly)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("candidate aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	musicians := make([]models.MusicianProfile, 0)
	for cursor.Next(ctx) {
		var m models.MusicianProfile
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode musician: %w", err)
		}
		normalizeProfile(&m)
		musicians = append(musicians, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return musicians, nil
}

func candidatePipeline(instrument string, activeOnly bool) mongo.Pipeline {
	// 1) $match: exact instrument, case-insensitive, on any array element
	matchFilter := bson.M{
		"instruments": bson.M{
			"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(instrument)) + "$",
			"$options": "i",
		},
	}
	if activeOnly {
		matchFilter["status"] = models.MusicianStatusActive
	}

	// 2) $lookup: open events assigned to this musician become commitments
	lookup := bson.D{
		{Key: "from", Value: EventsCollectionName},
		{Key: "let", Value: bson.M{"musicianId": "$id"}},
		{Key: "pipeline", Value: bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$assignedMusicianId", "$$musicianId"}},
				bson.M{"$not": bson.A{bson.M{"$in": bson.A{"$status", bson.A{
					models.EventStatusCancelled,
					models.EventStatusCompleted,
				}}}}},
			}}}},
			bson.M{"$project": bson.M{
				"_id":      0,
				"eventId":  "$id",
				"date":     1,
				"time":     1,
				"duration": 1,
				"status":   1,
			}},
		}},
		{Key: "as", Value: "commitments"},
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: matchFilter}},
		{{Key: "$lookup", Value: lookup}},
		// 3) $sort: stable snapshot order
		{{Key: "$sort", Value: bson.D{{Key: "id", Value: 1}}}},
	}
}

// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureIdentities(ctx, db); err != nil {
		problems = append(problems, "identities: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureVolunteers(ctx, db); err != nil {
		problems = append(problems, "volunteers: "+err.Error())
	}
	if err := ensureFoodDonations(ctx, db); err != nil {
		problems = append(problems, "food_donations: "+err.Error())
	}
	if err := ensureCommunityIssues(ctx, db); err != nil {
		problems = append(problems, "community_issues: "+err.Error())
	}
	if err := ensureStudents(ctx, db); err != nil {
		problems = append(problems, "students: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// ensureIndexSet creates each desired index, reusing any existing index
// with the same key pattern. An IndexOptionsConflict means a same-keys
// index exists under another name or with different options; it is dropped
// and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		if m.Options != nil && m.Options.Name != nil {
			desiredName = *m.Options.Name
		}
		desiredSig := keySig(m.Keys.(bson.D))

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if !strings.Contains(err.Error(), "IndexOptionsConflict") {
				zap.L().Warn("index ensure failed",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			old, findErr := findBySig(ctx, coll, desiredSig)
			if findErr != nil || old == "" {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}
			if _, dropErr := coll.Indexes().DropOne(ctx, old); dropErr != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop %s: %v", coll.Name(), desiredName, old, dropErr))
				continue
			}
			if _, createErr := coll.Indexes().CreateOne(ctx, m); createErr != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, createErr))
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig))
			continue
		}

		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func findBySig(ctx context.Context, coll *mongo.Collection, sig string) (string, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return "", err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if keySig(idx.Key) == sig {
			return idx.Name, nil
		}
	}
	return "", cur.Err()
}

func ensureIdentities(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("identities")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One identity per email; registration relies on the duplicate-key
		// error to report "email in use".
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_identities_email"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Case-folded email lookup used by sign-in flows.
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_emailci"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_users_role_status"),
		},
	})
}

func ensureVolunteers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("volunteers")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "location", Value: 1}},
			Options: options.Index().SetName("idx_volunteers_active_location"),
		},
	})
}

func ensureFoodDonations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("food_donations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Board and dashboard listings: status filter, newest first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_donations_status_created"),
		},
		{
			Keys:    bson.D{{Key: "donor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_donations_donor_created"),
		},
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_donations_volunteer_created"),
		},
	})
}

func ensureCommunityIssues(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("community_issues")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_issues_status_created"),
		},
		{
			Keys:    bson.D{{Key: "submitted_by", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_issues_submitter_created"),
		},
		{
			Keys:    bson.D{{Key: "urgency_level", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_issues_urgency_status"),
		},
	})
}

func ensureStudents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("students")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sponsored", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_students_sponsored_name"),
		},
	})
}

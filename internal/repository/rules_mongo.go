package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"nxn_tictactoe/internal/domain/ruleset"
	errs "nxn_tictactoe/internal/errors"
)

const rulesCollection = "rules"

// RulesMongo archives one document per board size.
type RulesMongo struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewRulesMongo(log *zap.SugaredLogger, mongo *mongo.Database) *RulesMongo {
	return &RulesMongo{
		log:   log,
		mongo: mongo,
	}
}

func (r *RulesMongo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.mongo.Collection(rulesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "board_size", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create rules index: %w", err)
	}
	return nil
}

// SaveRuleSet inserts rs unless its board size is archived already; the first
// generation time is kept.
func (r *RulesMongo) SaveRuleSet(ctx context.Context, rs ruleset.RuleSet) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"board_size": rs.BoardSize}
	update := bson.M{"$setOnInsert": rs}
	opts := options.Update().SetUpsert(true)

	res, err := r.mongo.Collection(rulesCollection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("archive rules for size %d: %w", rs.BoardSize, err)
	}
	if res.UpsertedCount > 0 {
		r.log.Infof("archived rules for board size %d", rs.BoardSize)
	}
	return nil
}

func (r *RulesMongo) GetRuleSet(ctx context.Context, boardSize int) (ruleset.RuleSet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rs ruleset.RuleSet
	err := r.mongo.Collection(rulesCollection).FindOne(ctx, bson.M{"board_size": boardSize}).Decode(&rs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ruleset.RuleSet{}, fmt.Errorf("%w: size %d", errs.ErrRulesNotArchived, boardSize)
	}
	if err != nil {
		return ruleset.RuleSet{}, err
	}
	return rs, nil
}

func (r *RulesMongo) ListSizes(ctx context.Context) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"board_size": 1}).
		SetSort(bson.D{{Key: "board_size", Value: 1}})
	cursor, err := r.mongo.Collection(rulesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ruleset.RuleSet
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	sizes := make([]int, 0, len(docs))
	for _, d := range docs {
		sizes = append(sizes, d.BoardSize)
	}
	return sizes, nil
}

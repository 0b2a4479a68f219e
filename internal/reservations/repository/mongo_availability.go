package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/config"
	"goodfoods/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const AvailabilityCollection = "Availability"

// availabilityDoc is one restaurant's row for one date. The _id combines
// both keys so seeding upserts are naturally idempotent.
type availabilityDoc struct {
	ID       string         `bson:"_id"`
	Date     string         `bson:"date"`
	Name     string         `bson:"name"`
	Location string         `bson:"location"`
	Address  string         `bson:"address"`
	Phone    string         `bson:"phone"`
	Slots    map[string]int `bson:"slots"`
}

func availabilityDocID(date, restaurant string) string {
	return fmt.Sprintf("%s|%s", date, restaurant)
}

type mongoAvailabilityStore struct {
	cfg          *config.Config
	collection   *mongo.Collection
	directory    RestaurantDirectory
	baseCapacity int
}

func NewMongoAvailabilityStore(cfg *config.Config, directory RestaurantDirectory) AvailabilityStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityStore{
		cfg:          cfg,
		collection:   db.Collection(AvailabilityCollection),
		directory:    directory,
		baseCapacity: cfg.BaseTableCapacity,
	}
}

func (s *mongoAvailabilityStore) Matrix(ctx context.Context, date string) (model.AvailabilityMatrix, error) {
	docs, err := s.load(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		if err := s.seed(ctx, date); err != nil {
			return nil, err
		}
		if docs, err = s.load(ctx, date); err != nil {
			return nil, err
		}
	}

	matrix := make(model.AvailabilityMatrix, len(docs))
	for _, doc := range docs {
		matrix[doc.Name] = &model.AvailabilityRow{
			Name:     doc.Name,
			Location: doc.Location,
			Address:  doc.Address,
			Phone:    doc.Phone,
			Slots:    doc.Slots,
		}
	}
	return matrix, nil
}

func (s *mongoAvailabilityStore) load(ctx context.Context, date string) ([]*availabilityDoc, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var docs []*availabilityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode availability for %s: %w", date, err)
	}
	return docs, nil
}

// seed creates the date's rows from the restaurant directory. $setOnInsert
// keeps a concurrent or repeated seed from resetting counts that already
// exist.
func (s *mongoAvailabilityStore) seed(ctx context.Context, date string) error {
	restaurants, err := s.directory.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load restaurant data for seeding: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(restaurants))
	for _, r := range restaurants {
		row := model.SeedRow(r, s.baseCapacity)
		doc := availabilityDoc{
			ID:       availabilityDocID(date, r.Name),
			Date:     date,
			Name:     row.Name,
			Location: row.Location,
			Address:  row.Address,
			Phone:    row.Phone,
			Slots:    row.Slots,
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetUpdate(bson.M{"$setOnInsert": doc}).
			SetUpsert(true))
	}
	if len(models) == 0 {
		return nil
	}

	if _, err := s.collection.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("failed to seed availability for %s: %w", date, err)
	}
	return nil
}

func (s *mongoAvailabilityStore) TableCount(ctx context.Context, date, restaurant, slot string) (int, error) {
	if !model.IsTimeSlot(slot) {
		return 0, reserrors.ErrUnknownSlot
	}

	matrix, err := s.Matrix(ctx, date)
	if err != nil {
		return 0, err
	}
	row, ok := matrix[restaurant]
	if !ok {
		return 0, reserrors.ErrUnknownRestaurant
	}
	return row.Slots[slot], nil
}

// Adjust applies the delta with a filtered $inc so the floor at zero is
// enforced server-side in one atomic update.
func (s *mongoAvailabilityStore) Adjust(ctx context.Context, date, restaurant, slot string, delta int) error {
	if !model.IsTimeSlot(slot) {
		return reserrors.ErrUnknownSlot
	}

	// Ensure the date exists before adjusting a never-seen matrix.
	if _, err := s.Matrix(ctx, date); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	slotField := "slots." + slot
	filter := bson.M{"_id": availabilityDocID(date, restaurant)}
	if delta < 0 {
		filter[slotField] = bson.M{"$gte": -delta}
	}

	result, err := s.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{slotField: delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust availability: %w", err)
	}
	if result.MatchedCount == 0 {
		// Either the row is missing or the decrement would go negative;
		// look at the row to tell the two apart.
		var doc availabilityDoc
		findErr := s.collection.FindOne(ctx, bson.M{"_id": availabilityDocID(date, restaurant)}).Decode(&doc)
		if findErr != nil {
			if errors.Is(findErr, mongo.ErrNoDocuments) {
				return reserrors.ErrUnknownRestaurant
			}
			return fmt.Errorf("failed to inspect availability row: %w", findErr)
		}
		return reserrors.ErrWouldGoNegative
	}
	return nil
}

// withTimeout wraps the context with a timeout unless an earlier deadline is
// already in force.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

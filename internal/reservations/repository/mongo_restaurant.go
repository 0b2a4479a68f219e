package repository

import (
	"context"
	"errors"
	"fmt"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/config"
	"goodfoods/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RestaurantCollection = "Restaurants"

type mongoRestaurantDirectory struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRestaurantDirectory(cfg *config.Config) RestaurantDirectory {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRestaurantDirectory{
		cfg:        cfg,
		collection: db.Collection(RestaurantCollection),
	}
}

func (d *mongoRestaurantDirectory) All(ctx context.Context) ([]*model.Restaurant, error) {
	ctx, cancel := withTimeout(ctx, d.cfg.ReadTimeout)
	defer cancel()

	cursor, err := d.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var restaurants []*model.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}
	return restaurants, nil
}

func (d *mongoRestaurantDirectory) FindByName(ctx context.Context, name string) (*model.Restaurant, error) {
	ctx, cancel := withTimeout(ctx, d.cfg.ReadTimeout)
	defer cancel()

	var restaurant model.Restaurant
	err := d.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrUnknownRestaurant
		}
		return nil, fmt.Errorf("failed to find restaurant: %w", err)
	}
	return &restaurant, nil
}

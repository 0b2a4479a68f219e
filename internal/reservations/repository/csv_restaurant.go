package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/model"
)

const restaurantCSVColumns = 8

// csvRestaurantDirectory reads the static restaurant catalog from
// restaurantData.csv. The file is treated as immutable reference data, so
// every call re-reads it rather than holding a cache that could go stale
// under an external edit.
type csvRestaurantDirectory struct {
	path string
}

func NewCSVRestaurantDirectory(path string) RestaurantDirectory {
	return &csvRestaurantDirectory{path: path}
}

func (d *csvRestaurantDirectory) All(ctx context.Context) ([]*model.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := readCSVFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("restaurant data file %s is empty", d.path)
	}

	restaurants := make([]*model.Restaurant, 0, len(records)-1)
	for i, record := range records[1:] {
		r, err := parseRestaurantRecord(record)
		if err != nil {
			return nil, fmt.Errorf("restaurant data row %d: %w", i+2, err)
		}
		restaurants = append(restaurants, r)
	}

	sort.Slice(restaurants, func(i, j int) bool {
		return restaurants[i].Name < restaurants[j].Name
	})
	return restaurants, nil
}

func (d *csvRestaurantDirectory) FindByName(ctx context.Context, name string) (*model.Restaurant, error) {
	restaurants, err := d.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range restaurants {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, reserrors.ErrUnknownRestaurant
}

func parseRestaurantRecord(record []string) (*model.Restaurant, error) {
	if len(record) < restaurantCSVColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", restaurantCSVColumns, len(record))
	}

	cost, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid approx_cost %q: %w", record[5], err)
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q: %w", record[6], err)
	}
	maxParty, err := strconv.Atoi(strings.TrimSpace(record[7]))
	if err != nil {
		return nil, fmt.Errorf("invalid max_party_size %q: %w", record[7], err)
	}

	var cuisines []string
	for _, c := range strings.Split(record[4], "|") {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}

	return &model.Restaurant{
		Name:         strings.TrimSpace(record[0]),
		Location:     strings.TrimSpace(record[1]),
		Address:      strings.TrimSpace(record[2]),
		Phone:        strings.TrimSpace(record[3]),
		Cuisines:     cuisines,
		ApproxCost:   cost,
		Rating:       rating,
		MaxPartySize: maxParty,
	}, nil
}

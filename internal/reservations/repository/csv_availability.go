package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/model"
)

// csvAvailabilityStore keeps one tracker file per date. A date's file is
// seeded from the restaurant directory on first access and never re-seeded,
// so adjustments survive restarts. All mutations rewrite the file in full;
// callers are expected to serialize access per date.
type csvAvailabilityStore struct {
	dataDir      string
	directory    RestaurantDirectory
	baseCapacity int
}

func NewCSVAvailabilityStore(dataDir string, directory RestaurantDirectory, baseCapacity int) AvailabilityStore {
	return &csvAvailabilityStore{
		dataDir:      dataDir,
		directory:    directory,
		baseCapacity: baseCapacity,
	}
}

func (s *csvAvailabilityStore) Matrix(ctx context.Context, date string) (model.AvailabilityMatrix, error) {
	rows, err := s.loadRows(ctx, date)
	if err != nil {
		return nil, err
	}
	matrix := make(model.AvailabilityMatrix, len(rows))
	for _, row := range rows {
		matrix[row.Name] = row
	}
	return matrix, nil
}

func (s *csvAvailabilityStore) TableCount(ctx context.Context, date, restaurant, slot string) (int, error) {
	if !model.IsTimeSlot(slot) {
		return 0, reserrors.ErrUnknownSlot
	}
	rows, err := s.loadRows(ctx, date)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if row.Name == restaurant {
			return row.Slots[slot], nil
		}
	}
	return 0, reserrors.ErrUnknownRestaurant
}

func (s *csvAvailabilityStore) Adjust(ctx context.Context, date, restaurant, slot string, delta int) error {
	if !model.IsTimeSlot(slot) {
		return reserrors.ErrUnknownSlot
	}
	rows, err := s.loadRows(ctx, date)
	if err != nil {
		return err
	}

	var target *model.AvailabilityRow
	for _, row := range rows {
		if row.Name == restaurant {
			target = row
			break
		}
	}
	if target == nil {
		return reserrors.ErrUnknownRestaurant
	}
	if target.Slots[slot]+delta < 0 {
		return reserrors.ErrWouldGoNegative
	}
	target.Slots[slot] += delta

	return s.writeRows(date, rows)
}

// loadRows reads the tracker for a date, seeding it first if the file does
// not exist yet. Row order from the file is preserved so rewrites stay
// stable diffs.
func (s *csvAvailabilityStore) loadRows(ctx context.Context, date string) ([]*model.AvailabilityRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := trackerPath(s.dataDir, date)
	if !fileExists(path) {
		if err := s.seed(ctx, date); err != nil {
			return nil, err
		}
	}

	records, err := readCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracker for %s: %w", date, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("tracker file %s is empty", path)
	}

	header := records[0]
	if len(header) != 4+len(model.TimeSlots) {
		return nil, fmt.Errorf("tracker file %s has %d columns, expected %d", path, len(header), 4+len(model.TimeSlots))
	}

	rows := make([]*model.AvailabilityRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("tracker row %d has %d columns, expected %d", i+2, len(record), len(header))
		}
		row := &model.AvailabilityRow{
			Name:     record[0],
			Location: record[1],
			Address:  record[2],
			Phone:    record[3],
			Slots:    make(map[string]int, len(model.TimeSlots)),
		}
		for j, slot := range model.TimeSlots {
			count, err := strconv.Atoi(strings.TrimSpace(record[4+j]))
			if err != nil {
				return nil, fmt.Errorf("tracker row %d slot %q: invalid count %q", i+2, slot, record[4+j])
			}
			row.Slots[slot] = count
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *csvAvailabilityStore) seed(ctx context.Context, date string) error {
	restaurants, err := s.directory.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed tracker for %s: %w", date, err)
	}

	rows := make([]*model.AvailabilityRow, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, model.SeedRow(r, s.baseCapacity))
	}
	return s.writeRows(date, rows)
}

func (s *csvAvailabilityStore) writeRows(date string, rows []*model.AvailabilityRow) error {
	header := append([]string{"Name", "Location", "Address", "Phone"}, model.TimeSlots...)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Name, row.Location, row.Address, row.Phone)
		for _, slot := range model.TimeSlots {
			record = append(record, strconv.Itoa(row.Slots[slot]))
		}
		records = append(records, record)
	}
	return writeCSVFile(trackerPath(s.dataDir, date), records)
}

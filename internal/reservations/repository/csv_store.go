package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSV file naming matches the original tracker wire format so existing data
// files remain readable: restaurant_booking_tracker[DD.MM.YYYY].csv and
// bookings[DD.MM.YYYY].csv under the data directory.

func trackerPath(dataDir, date string) string {
	return filepath.Join(dataDir, fmt.Sprintf("restaurant_booking_tracker[%s].csv", date))
}

func bookingsPath(dataDir, date string) string {
	return filepath.Join(dataDir, fmt.Sprintf("bookings[%s].csv", date))
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// writeCSVFile rewrites the whole file through a temp file and rename so a
// crash mid-write never leaves a truncated store behind.
func writeCSVFile(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

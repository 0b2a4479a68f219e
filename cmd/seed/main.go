// The seed tool generates a synthetic restaurant catalog in the format the
// reservations service reads at startup.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	nameParts = []string{
		"Saffron", "Amber", "Clove", "Juniper", "Ember", "Harvest", "Copper",
		"Willow", "Tamarind", "Cedar", "Lantern", "Meadow", "Peppercorn",
		"Marigold", "Basil", "Henna", "Monsoon", "Canopy", "Terrace", "Orchid",
	}
	nameSuffixes = []string{
		"Bistro", "Kitchen", "House", "Table", "Eatery", "Diner", "Grill", "Cafe",
	}
	locations = []string{
		"Indiranagar", "Koramangala", "Whitefield", "Jayanagar", "HSR Layout",
		"MG Road", "Malleshwaram", "Electronic City", "Banashankari", "Hebbal",
	}
	cuisines = []string{
		"North Indian", "South Indian", "Chinese", "Italian", "Continental",
		"Thai", "Mexican", "Japanese", "Mediterranean", "Mughlai",
	}
)

func main() {
	var (
		out   = flag.String("out", filepath.Join("data", "restaurantData.csv"), "output path for the restaurant catalog")
		count = flag.Int("count", 50, "number of restaurants to generate")
		seed  = flag.Int64("seed", 0, "random seed (0 uses a random one)")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	if err := writeCatalog(*out, generateCatalog(rng, *count)); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}
	fmt.Printf("Generated %d restaurants into %s\n", *count, *out)
}

func generateCatalog(rng *rand.Rand, count int) [][]string {
	records := [][]string{
		{"name", "location", "address", "phone", "cuisines", "approx_cost", "rating", "max_party_size"},
	}

	seen := make(map[string]bool)
	for len(records) <= count {
		name := fmt.Sprintf("%s %s", nameParts[rng.Intn(len(nameParts))], nameSuffixes[rng.Intn(len(nameSuffixes))])
		if seen[name] {
			continue
		}
		seen[name] = true

		location := locations[rng.Intn(len(locations))]
		address := fmt.Sprintf("%d %s Main Rd", 1+rng.Intn(200), location)
		phone := fmt.Sprintf("+91 98%08d", rng.Intn(100000000))

		picked := rng.Perm(len(cuisines))[:1+rng.Intn(3)]
		names := make([]string, len(picked))
		for i, idx := range picked {
			names[i] = cuisines[idx]
		}

		cost := 300 + 100*rng.Intn(20)
		rating := 3.0 + float64(rng.Intn(21))/10.0
		maxParty := 4 + 2*rng.Intn(7)

		records = append(records, []string{
			name,
			location,
			address,
			phone,
			strings.Join(names, "|"),
			strconv.Itoa(cost),
			strconv.FormatFloat(rating, 'f', 1, 64),
			strconv.Itoa(maxParty),
		})
	}
	return records
}

func writeCatalog(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

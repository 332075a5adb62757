package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"stormlightlabs.org/hockey/internal/core"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// parseGameIDs expands a comma-separated list of game IDs and ID ranges.
// Examples: "2023020001", "2023020001-2023020010,2023020044"
func parseGameIDs(input string) ([]core.GameID, error) {
	seen := make(map[core.GameID]bool)
	var ids []core.GameID

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if start, end, found := strings.Cut(part, "-"); found {
			startID, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				return nil, fmt.Errorf("invalid game id %q", start)
			}
			endID, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, fmt.Errorf("invalid game id %q", end)
			}
			if endID < startID {
				return nil, fmt.Errorf("invalid game id range %q", part)
			}
			for id := startID; id <= endID; id++ {
				if !seen[core.GameID(id)] {
					seen[core.GameID(id)] = true
					ids = append(ids, core.GameID(id))
				}
			}
			continue
		}

		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid game id %q", part)
		}
		if !seen[core.GameID(id)] {
			seen[core.GameID(id)] = true
			ids = append(ids, core.GameID(id))
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no game ids given")
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// parseSeason accepts "20232024" or "2023" and returns the 8-digit form.
func parseSeason(input string) (core.Season, error) {
	input = strings.TrimSpace(input)

	year, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid season %q", input)
	}

	switch len(input) {
	case 4:
		return core.Season(year*10000 + year + 1), nil
	case 8:
		return core.Season(year), nil
	default:
		return 0, fmt.Errorf("invalid season %q: want YYYY or YYYYYYYY", input)
	}
}

// writeCSV marshals rows to a CSV file under the output directory. Blank
// fields stay blank; readers treat them as null.
func writeCSV(outputDir, name string, rows any) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error: failed to create output dir: %w", err)
	}

	path := filepath.Join(outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return "", fmt.Errorf("error: failed to write %s: %w", path, err)
	}
	return path, nil
}

package benchmark

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	claseval "github.com/FrenchMajesty/classifier-eval"
	"github.com/google/uuid"
)

// LoadDataset loads labeled samples from a CSV file with a header row and
// text,label columns. A limit of 0 falls back to MAX_DATASET_SIZE.
func LoadDataset(path string, limit int) ([]claseval.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("dataset file must have at least a header and one row")
	}

	if limit <= 0 || limit > MAX_DATASET_SIZE {
		limit = MAX_DATASET_SIZE
	}

	// Skip header row (index 0), parse data rows
	samples := make([]claseval.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue // Skip malformed rows
		}
		samples = append(samples, claseval.Sample{
			Text:  record[0], // text column
			Label: record[1], // label column
		})
		if len(samples) == limit {
			break
		}
	}

	return samples, nil
}

// SaveReport saves the run metrics to a JSON file in dir and returns the
// file path.
func SaveReport(dir string, metrics *RunMetrics) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	random := uuid.New().String()[:8]
	filename := fmt.Sprintf("report_%s_%s.json", timestamp, random)

	jsonData, err := json.Marshal(metrics)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", err
	}

	return path, nil
}

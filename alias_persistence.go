package claseval

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FrenchMajesty/classifier-eval/utils/disjoint_set"
)

// FileAliasPersistence implements AliasPersistence using file-based storage
type FileAliasPersistence struct {
	filepath  string
	canonical []string
}

// NewFileAliasPersistence creates a file-based alias table persistence
// handler. The canonical labels seed a fresh table when the file does not
// exist yet.
func NewFileAliasPersistence(filepath string, canonical []string) *FileAliasPersistence {
	return &FileAliasPersistence{
		filepath:  filepath,
		canonical: canonical,
	}
}

// Load loads the alias table from the file. If the file doesn't exist,
// returns a fresh table seeded with the canonical labels.
func (f *FileAliasPersistence) Load() (*disjoint_set.AliasSet, error) {
	if _, err := os.Stat(f.filepath); os.IsNotExist(err) {
		return disjoint_set.NewAliasSet(f.canonical), nil
	}

	data, err := os.ReadFile(f.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias table from file %s: %w", f.filepath, err)
	}

	aliases := disjoint_set.NewAliasSet(f.canonical)
	if err := json.Unmarshal(data, aliases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alias table from file %s: %w", f.filepath, err)
	}

	return aliases, nil
}

// Save saves the alias table to the file
func (f *FileAliasPersistence) Save(aliases *disjoint_set.AliasSet) error {
	data, err := json.Marshal(aliases)
	if err != nil {
		return fmt.Errorf("failed to marshal alias table: %w", err)
	}

	if err := os.WriteFile(f.filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write alias table to file %s: %w", f.filepath, err)
	}

	return nil
}

package hargen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/tracelens/motor/model"
)

// GenerateOptions configures trace generation
type GenerateOptions struct {
	EntryCount     int       // number of entries to generate
	DictionaryPath string    // path to word dictionary (default: /usr/share/dict/words)
	Seed           int64     // random seed for reproducibility (0 = use time)
	ErrorRate      float64   // share of entries with status >= 400, 0..1
	SlowRate       float64   // share of entries slower than one second, 0..1
	Domains        []string  // hosts to spread requests over
	StartTime      time.Time // startedDateTime of the first entry (default: now)
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	EntryCount:     10,
	DictionaryPath: "/usr/share/dict/words",
	ErrorRate:      0.1,
	SlowRate:       0.1,
	Domains:        []string{"api.example.com", "cdn.example.com", "auth.example.org"},
}

// GenerateResult contains the generated har location
type GenerateResult struct {
	HARFilePath  string // path to generated har file
	TotalEntries int    // number of entries generated
}

func applyDefaults(opts GenerateOptions) GenerateOptions {
	if opts.DictionaryPath == "" {
		opts.DictionaryPath = DefaultGenerateOptions.DictionaryPath
	}
	if len(opts.Domains) == 0 {
		opts.Domains = DefaultGenerateOptions.Domains
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	return opts
}

// GenerateInMemory creates a har structure without writing to disk
func GenerateInMemory(opts GenerateOptions) (*model.HAR, error) {
	opts = applyDefaults(opts)

	if opts.ErrorRate < 0 || opts.ErrorRate > 1 || opts.SlowRate < 0 || opts.SlowRate > 1 {
		return nil, fmt.Errorf("rates must be between 0 and 1 (error=%v, slow=%v)", opts.ErrorRate, opts.SlowRate)
	}

	// local rng, the global source stays untouched
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	dict, err := LoadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	entryGen := NewEntryGenerator(dict, rng, opts)
	entries := make([]model.Entry, 0, opts.EntryCount)
	for i := 0; i < opts.EntryCount; i++ {
		entries = append(entries, entryGen.GenerateEntry(i))
	}

	return &model.HAR{
		Log: model.Log{
			Version: "1.2",
			Creator: harhar.Creator{
				Name:    "hargen",
				Version: "1.0.0",
			},
			Entries: entries,
		},
	}, nil
}

// Generate creates a har file in the temp directory
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	har, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "hargen-*.har")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if err := writeHAR(tmpFile, har); err != nil {
		os.Remove(tmpFile.Name())
		return nil, err
	}

	return &GenerateResult{
		HARFilePath:  tmpFile.Name(),
		TotalEntries: len(har.Log.Entries),
	}, nil
}

// GenerateToFile generates a har and writes it to a specific file path
func GenerateToFile(path string, opts GenerateOptions) (*GenerateResult, error) {
	har, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := writeHAR(file, har); err != nil {
		return nil, err
	}

	return &GenerateResult{
		HARFilePath:  path,
		TotalEntries: len(har.Log.Entries),
	}, nil
}

// Marshal renders a generated har as indented JSON.
func Marshal(har *model.HAR) ([]byte, error) {
	data, err := json.MarshalIndent(har, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal har: %w", err)
	}
	return data, nil
}

func writeHAR(file *os.File, har *model.HAR) error {
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(har); err != nil {
		return fmt.Errorf("failed to write har: %w", err)
	}
	return nil
}

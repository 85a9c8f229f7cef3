package hargen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// fallback word list for when /usr/share/dict/words doesn't exist (windows, containers)
var fallbackWords = []string{
	"api", "user", "data", "orders", "cart", "search", "session",
	"profile", "settings", "assets", "images", "scripts", "styles",
	"metrics", "health", "status", "items", "products", "checkout",
	"login", "logout", "token", "config", "feed", "events", "upload",
	"reports", "billing", "invoices", "accounts", "teams", "projects",
	"deploy", "build", "release", "cache", "queue", "worker", "boot",
}

// Dictionary holds a list of words for random selection
type Dictionary struct {
	words []string
}

// LoadDictionary loads words from a dictionary file, falling back to a built-in
// list when the file does not exist.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return &Dictionary{words: fallbackWords}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Dictionary{words: fallbackWords}, nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())

		// url path segments: 3-12 chars, ascii letters only
		if len(word) >= 3 && len(word) <= 12 && isAlpha(word) {
			words = append(words, strings.ToLower(word))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no valid words found in dictionary")
	}

	return &Dictionary{words: words}, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// RandomWord returns a random word from the dictionary
func (d *Dictionary) RandomWord(rng *rand.Rand) string {
	if len(d.words) == 0 {
		return "word"
	}
	return d.words[rng.Intn(len(d.words))]
}

// Size returns the number of words in the dictionary
func (d *Dictionary) Size() int {
	return len(d.words)
}

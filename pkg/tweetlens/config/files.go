package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}

	return &sl, nil
}

// SaveStoplist writes terms in the format LoadStoplist reads.
func SaveStoplist(path string, terms []string) error {
	data, err := yaml.Marshal(Stoplist{Terms: terms})
	if err != nil {
		return fmt.Errorf("encode stoplist: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write stoplist %s: %w", path, err)
	}
	return nil
}

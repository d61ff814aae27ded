package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// State is what the TUI remembers between runs
type State struct {
	Theme         string `toml:"theme"`
	AttachmentDir string `toml:"attachment_dir"`
	LastEndpoint  string `toml:"last_endpoint"`
}

// NewState creates a new state with default values
func NewState() *State {
	return &State{
		Theme: defaultTheme,
	}
}

// SaveState writes the state to a TOML file
func SaveState(filePath string, state *State) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create/open state file %s: %w", filePath, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := toml.NewEncoder(writer)
	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("failed to encode state to TOML file %s: %w", filePath, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer for state file %s: %w", filePath, err)
	}

	log.Debug("State saved to file", "file", filePath)
	return nil
}

// LoadState loads the state from a TOML file, falling back to defaults when
// the file does not exist
func LoadState(filePath string) (*State, error) {
	state := NewState()
	if _, err := toml.DecodeFile(filePath, state); err != nil {
		if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("failed to decode TOML from file %s: %w", filePath, err)
	}
	return state, nil
}

// GetStatePath returns the default state file path
func GetStatePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./verbachat-state.toml"
	}
	return filepath.Join(homeDir, ".config", appName, "state.toml")
}

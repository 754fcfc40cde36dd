package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

const mappingConfigKey = "mapping_config"

// GetConfig reads one config value
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("config key not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// SetConfig upserts one config value
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetAllConfig reads the whole config table
func (s *Store) GetAllConfig() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM config")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	config := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		config[key] = value
	}

	return config, rows.Err()
}

// LoadMappingConfig reads the saved mapping config; defaults when none saved
func (s *Store) LoadMappingConfig() (*model.MappingConfig, error) {
	raw, err := s.GetConfig(mappingConfigKey)
	if err != nil {
		return &model.MappingConfig{
			Columns: map[model.CanonicalField]string{},
			Skills:  model.DefaultSkills(),
		}, nil
	}

	var cfg model.MappingConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode mapping config: %w", err)
	}
	if cfg.Columns == nil {
		cfg.Columns = map[model.CanonicalField]string{}
	}
	return &cfg, nil
}

// SaveMappingConfig persists the mapping config between sessions
func (s *Store) SaveMappingConfig(cfg *model.MappingConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode mapping config: %w", err)
	}
	return s.SetConfig(mappingConfigKey, string(data))
}

package config

import (
	"encoding/json"
	"os"

	"github.com/todovault/todovault/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, values are copied into the runtime Config.
type JsonConfig struct {
	Backend            string `json:"backend"`
	DatabasePath       string `json:"database_path"`
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	AdminEnabled       bool   `json:"admin_enabled"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config command-line flags via
// flagx.JsonConfigFlags(); if empty, nothing is loaded. Read or unmarshal
// errors panic. Intended usage is defaults -> parseJson -> parseFlags,
// where later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.Backend = jc.Backend
	cfg.DatabasePath = jc.DatabasePath
	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.AdminEnabled = jc.AdminEnabled
}

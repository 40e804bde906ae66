package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so that operators can keep a config file like:
//
//	{
//	  "server": {"http_address": "0.0.0.0:8080", "request_timeout": "30s"},
//	  "sync": {"default_strategy": "server_wins",
//	           "strategies": {"learning_progress": "merge"}}
//	}
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Sync struct {
		DefaultStrategy    string            `json:"default_strategy"`
		Strategies         map[string]string `json:"strategies"`
		SessionLockTimeout Duration          `json:"session_lock_timeout"`
	} `json:"sync,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		RetentionSweepInterval Duration `json:"retention_sweep_interval"`
		TombstoneRetention     Duration `json:"tombstone_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Sync: Sync{
			DefaultStrategy:    jsonCfg.Sync.DefaultStrategy,
			Strategies:         jsonCfg.Sync.Strategies,
			SessionLockTimeout: time.Duration(jsonCfg.Sync.SessionLockTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			RetentionSweepInterval: time.Duration(jsonCfg.Workers.RetentionSweepInterval),
			TombstoneRetention:     time.Duration(jsonCfg.Workers.TombstoneRetention),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

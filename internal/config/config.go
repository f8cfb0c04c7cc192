// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package config loads the process configuration surface (§6 of the spec:
// sctp.*, m3ua.*, map.*, smpp.*) from a YAML document into a typed struct.
package config

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sigtrand/sigtrand/internal/logging"
)

// Config is the full process configuration surface.
type Config struct {
	SCTP    SCTPConfig    `yaml:"sctp"`
	M3UA    M3UAConfig    `yaml:"m3ua"`
	MAP     MAPConfig     `yaml:"map"`
	SMPP    SMPPConfig    `yaml:"smpp"`
	Logging logging.Config `yaml:"logging"`
	Routes  []RouteConfig `yaml:"routes"`
}

// SCTPConfig is the sctp.* configuration surface.
type SCTPConfig struct {
	Network       string `yaml:"network"` // "sctp" or "tcp"
	LocalAddress  string `yaml:"local_address"`
	RemoteAddress string `yaml:"remote_address"`
	Port          int    `yaml:"port"`
	Streams       int    `yaml:"streams"`
	HeartbeatMS   int    `yaml:"heartbeat_ms"`
}

// M3UAConfig is the m3ua.* configuration surface.
type M3UAConfig struct {
	PointCode         uint32   `yaml:"point_code"`
	PeerPointCode     uint32   `yaml:"peer_point_code"`
	NetworkIndicator  uint8    `yaml:"network_indicator"`
	RoutingContexts   []uint32 `yaml:"routing_contexts"`
	NetworkAppearance *uint32  `yaml:"network_appearance"`
	OperationTimeoutMS int     `yaml:"operation_timeout_ms"`
}

// MAPConfig is the map.* configuration surface.
type MAPConfig struct {
	OperationTimeoutMS   int    `yaml:"operation_timeout_ms"`
	HLRGT                string `yaml:"hlr_gt"`
	MSCGT                string `yaml:"msc_gt"`
	ServiceCentreAddress string `yaml:"service_centre_address"`
}

// SMPPConfig is the smpp.* configuration surface.
type SMPPConfig struct {
	Bind           string `yaml:"bind"`
	MaxConnections int    `yaml:"max_connections"`
	PerSessionTPS  int    `yaml:"per_session_tps"`
}

// RouteConfig seeds the routing table (§7 Supplemented Features:
// per-operator default route seeding moved from compiled-in data to config).
type RouteConfig struct {
	ID               string   `yaml:"id"`
	CarrierID        string   `yaml:"carrier_id"`
	ConnectionID     string   `yaml:"connection_id"`
	Operator         string   `yaml:"operator"`
	Priority         uint8    `yaml:"priority"`
	CostCentiUnits   int64    `yaml:"cost_centi_units"`
	QualityScore     float64  `yaml:"quality_score"`
	Active           bool     `yaml:"active"`
	SupportsUnicode  bool     `yaml:"supports_unicode"`
	SupportsFlash    bool     `yaml:"supports_flash"`
	SupportsConcat   bool     `yaml:"supports_concatenation"`
	MaxSegments      uint8    `yaml:"max_segments"`
	DeliveryReport   bool     `yaml:"delivery_report"`
}

// Manager loads and serves the Config, safe for concurrent reads.
type Manager struct {
	mu   sync.RWMutex
	path string
	cfg  Config
}

// NewManager loads configuration from path.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the configuration file from disk.
func (m *Manager) Reload() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

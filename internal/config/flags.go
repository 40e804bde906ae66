package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all server configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-default-strategy default conflict resolution strategy
//	-session-lock-timeout per-device sync session lock timeout
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var defaultStrategy string
	var sessionLockTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&defaultStrategy, "default-strategy", "", "Default conflict resolution strategy")
	flag.DurationVar(&sessionLockTimeout, "session-lock-timeout", 0, "Sync session lock timeout")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Sync: Sync{
			DefaultStrategy:    defaultStrategy,
			SessionLockTimeout: sessionLockTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// ParseAgentFlags parses the device-agent command-line flags.
//
// Flags:
//
//	-s server base URL
//	-db local sqlite database path
//	-device device identifier
//	-sync-interval background sync interval
//	-request-timeout per-request timeout
func ParseAgentFlags() *AgentConfig {
	var baseURL string
	var dbPath string
	var deviceID string
	var syncInterval time.Duration
	var requestTimeout time.Duration

	flag.StringVar(&baseURL, "s", "", "Sync server base URL")
	flag.StringVar(&dbPath, "db", "", "Local sqlite database path")
	flag.StringVar(&deviceID, "device", "", "Device identifier")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout")

	flag.Parse()

	return &AgentConfig{
		Server: AgentServer{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: AgentStorage{
			DBPath: dbPath,
		},
		Sync: AgentSync{
			DeviceID: deviceID,
			Interval: syncInterval,
		},
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

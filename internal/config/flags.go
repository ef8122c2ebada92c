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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-r redis address in format [host]:[port]
//	-i product images directory
//	-c/-config json file path with configs
//	-session-sign-key session cookie signing key
//	-session-timeout identity lifetime in seconds
//	-session-expiration server-side session entry lifetime in seconds
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-amqp-url mail broker URL
//	-mail-from sender address of order confirmations
//	-page-size default catalog page size
//	-max-quantity maximum quantity of a cart line
//	-sweep-interval periodic expired-session sweep interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress, redisAddress NetAddress
	var databaseDSN string
	var imagesDir string
	var jsonConfigPath string
	var sessionSignKey string
	var sessionTimeout int
	var sessionExpiration int
	var requestTimeout time.Duration
	var amqpURL string
	var mailFrom string
	var pageSize int
	var maxQuantity int
	var sweepInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&redisAddress, "r", "Redis address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&imagesDir, "i", "", "Product images directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&sessionSignKey, "session-sign-key", "", "Session cookie signing key")
	flag.IntVar(&sessionTimeout, "session-timeout", 0, "Identity lifetime in seconds")
	flag.IntVar(&sessionExpiration, "session-expiration", 0, "Session entry lifetime in seconds")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&amqpURL, "amqp-url", "", "Mail broker URL")
	flag.StringVar(&mailFrom, "mail-from", "", "Order confirmation sender address")
	flag.IntVar(&pageSize, "page-size", 0, "Default catalog page size")
	flag.IntVar(&maxQuantity, "max-quantity", 0, "Maximum quantity of a cart line")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired session sweep interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			SessionSignKey: sessionSignKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Redis: Redis{
				Address: redisAddress.String(),
			},
			Images: Images{
				Dir: imagesDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Session: Session{
			TimeoutSeconds:    sessionTimeout,
			ExpirationSeconds: sessionExpiration,
		},
		Pagination: Pagination{
			DefaultPageSize: pageSize,
			MaxQuantity:     maxQuantity,
		},
		Mail: Mail{
			AMQPURL: amqpURL,
			From:    mailFrom,
		},
		Workers: Workers{
			SessionSweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file. Durations accept Go duration strings ("30s", "1h").
type StructuredJSONConfig struct {
	App struct {
		Version          string   `json:"version"`
		SessionSignKey   string   `json:"session_sign_key"`
		SessionIssuer    string   `json:"session_issuer"`
		CookieLifetime   Duration `json:"cookie_lifetime"`
		PasswordHashCost int      `json:"password_hash_cost"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address   string `json:"address"`
			Password  string `json:"password"`
			DB        int    `json:"db"`
			KeyPrefix string `json:"key_prefix"`
		} `json:"redis,omitempty"`

		Images struct {
			Dir       string `json:"dir"`
			URLPrefix string `json:"url_prefix"`
		} `json:"images,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Session struct {
		Timeout             int  `json:"timeout"`
		Expiration          int  `json:"expiration"`
		DisableRequestSweep bool `json:"disable_request_sweep"`
	} `json:"session,omitempty"`

	Pagination struct {
		DefaultPageSize int `json:"default_page_size"`
		MaxQuantity     int `json:"max_quantity"`
	} `json:"pagination,omitempty"`

	Mail struct {
		AMQPURL         string `json:"amqp_url"`
		Queue           string `json:"queue"`
		From            string `json:"from"`
		FromName        string `json:"from_name"`
		CheckoutSubject string `json:"checkout_subject"`
	} `json:"mail,omitempty"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
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
			Version:          jsonCfg.App.Version,
			SessionSignKey:   jsonCfg.App.SessionSignKey,
			SessionIssuer:    jsonCfg.App.SessionIssuer,
			CookieLifetime:   time.Duration(jsonCfg.App.CookieLifetime),
			PasswordHashCost: jsonCfg.App.PasswordHashCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:   jsonCfg.Storage.Redis.Address,
				Password:  jsonCfg.Storage.Redis.Password,
				DB:        jsonCfg.Storage.Redis.DB,
				KeyPrefix: jsonCfg.Storage.Redis.KeyPrefix,
			},
			Images: Images{
				Dir:       jsonCfg.Storage.Images.Dir,
				URLPrefix: jsonCfg.Storage.Images.URLPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Session: Session{
			TimeoutSeconds:      jsonCfg.Session.Timeout,
			ExpirationSeconds:   jsonCfg.Session.Expiration,
			DisableRequestSweep: jsonCfg.Session.DisableRequestSweep,
		},
		Pagination: Pagination{
			DefaultPageSize: jsonCfg.Pagination.DefaultPageSize,
			MaxQuantity:     jsonCfg.Pagination.MaxQuantity,
		},
		Mail: Mail{
			AMQPURL:         jsonCfg.Mail.AMQPURL,
			Queue:           jsonCfg.Mail.Queue,
			From:            jsonCfg.Mail.From,
			FromName:        jsonCfg.Mail.FromName,
			CheckoutSubject: jsonCfg.Mail.CheckoutSubject,
		},
		Workers: Workers{
			SessionSweepInterval: time.Duration(jsonCfg.Workers.SessionSweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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

package config

import "time"

// Built-in defaults applied when no source sets a value.
const (
	defaultSessionIssuer     = "go-storefront"
	defaultCookieLifetime    = 30 * 24 * time.Hour
	defaultPasswordHashCost  = 10
	defaultRedisKeyPrefix    = "storefront:session"
	defaultImagesDir         = "./img/products"
	defaultImagesURLPrefix   = "/img/products"
	defaultRequestTimeout    = 30 * time.Second
	defaultSessionTimeout    = 1800
	defaultSessionExpiration = 1800
	defaultPageSize          = 10
	defaultMaxQuantity       = 100
	defaultMailQueue         = "storefront.mail"
	defaultCheckoutSubject   = "Order confirmation"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer:    defaultSessionIssuer,
			CookieLifetime:   defaultCookieLifetime,
			PasswordHashCost: defaultPasswordHashCost,
		},
		Storage: Storage{
			Redis: Redis{
				KeyPrefix: defaultRedisKeyPrefix,
			},
			Images: Images{
				Dir:       defaultImagesDir,
				URLPrefix: defaultImagesURLPrefix,
			},
		},
		Server: Server{
			RequestTimeout: defaultRequestTimeout,
		},
		Session: Session{
			TimeoutSeconds:    defaultSessionTimeout,
			ExpirationSeconds: defaultSessionExpiration,
		},
		Pagination: Pagination{
			DefaultPageSize: defaultPageSize,
			MaxQuantity:     defaultMaxQuantity,
		},
		Mail: Mail{
			Queue:           defaultMailQueue,
			CheckoutSubject: defaultCheckoutSubject,
		},
	}
}

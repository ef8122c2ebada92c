package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionEntryNotFound is returned when no session entry matches the
	// requested hash or user.
	ErrSessionEntryNotFound = errors.New("session entry was not found")

	// ErrInvalidExpiration is returned by the expiry sweep for a negative
	// expiration.
	ErrInvalidExpiration = errors.New("session expiration must not be negative")

	ErrProductNotFound  = errors.New("product was not found")
	ErrAddressNotFound  = errors.New("address was not found")
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrInvalidOrderColumn is returned when an order clause has more than two
	// tokens or names a column the products table does not have.
	ErrInvalidOrderColumn = errors.New("invalid order column")

	// ErrInvalidOrderDirection is returned when the order direction is
	// neither ASC nor DESC.
	ErrInvalidOrderDirection = errors.New("invalid order direction")

	// ErrOrderNotSaved is returned when an order insert affects no rows.
	ErrOrderNotSaved = errors.New("order was not saved")

	// ErrBrowserSessionNotFound is returned when the session store has no
	// state for the requested id.
	ErrBrowserSessionNotFound = errors.New("browser session was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	ErrScanningRow  = errors.New("failed to scan row")
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrSessionStorage wraps every failure of the browser-session store.
	ErrSessionStorage = errors.New("browser session storage failure")
)

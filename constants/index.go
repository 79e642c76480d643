package constants

// Visit lifecycle statuses
const (
	VISIT_DRAFT  = "DRAFT"
	VISIT_ACTIVE = "ACTIVE"
	VISIT_CLOSED = "CLOSED"
)

// Payment methods
const (
	METHOD_CASH   = "CASH"
	METHOD_PAYNOW = "PAYNOW"
)

// Catalog product names the pricing engine looks up by exact match
const (
	PRODUCT_FIRST_HOUR      = "First hour"
	PRODUCT_SUBSEQUENT_HOUR = "Subsequent hour"
	PRODUCT_EXTENSION_HOUR  = "Extension hour"
	PRODUCT_DRINK           = "Drink"
)

// Default buffer added on check-in when the client does not send one
const DEFAULT_BUFFER_MINUTES = 10

// Drafts older than this are swept by the cleanup job
const DRAFT_TTL_HOURS = 6

// User-facing messages
const (
	VISIT_NOT_FOUND       = "Visit not found"
	VISIT_NOT_DRAFT       = "Visit is not a draft"
	VISIT_NOT_ACTIVE      = "Visit is not active"
	INVALID_INPUT         = "Invalid input"
	INVALID_SEAT          = "Invalid seat number"
	SEAT_ALREADY_ENDED    = "Seat already checked out"
	PRICING_UNAVAILABLE   = "Price list is missing an active entry"
	OVER_LIMIT            = "Drink limit reached for this visit"
	PRODUCT_NOT_FOUND     = "Product not found"
	INVALID_PRODUCT       = "Invalid or inactive product"
	EMPTY_SALE            = "Select items or enter a donation amount"
	MISSING_PASSWORD      = "Missing password"
	INVALID_PASSWORD      = "Invalid password"
	PASSWORD_TOO_SHORT    = "Password too short (min 8)"
	NOT_ADMIN             = "Admin session required"
	ADMIN_NOT_CONFIGURED  = "Admin not configured"
	PAYNOW_NOT_CONFIGURED = "PayNow payee is not configured"
	ERROR_INTERNAL_ERROR  = "Internal error"
)

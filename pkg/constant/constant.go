package constant

const (
	// PasswordPlaceholder replaces the stored hash in every user payload.
	// Clients already depend on this exact value.
	PasswordPlaceholder = "🤣😁👍"

	// BearerPrefix is the expected Authorization header scheme.
	BearerPrefix = "Bearer "

	// UserContextKey is the fiber locals key the auth gate stores the
	// resolved user under.
	UserContextKey = "authUser"

	// LoginEndpointTag labels audit log rows written for login events.
	LoginEndpointTag = "/login"
)

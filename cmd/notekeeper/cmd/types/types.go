package types

// ContextKey is the type for values attached to the command context.
type ContextKey string

// ClientAppKey carries the initialized *client.App.
const ClientAppKey ContextKey = "app"

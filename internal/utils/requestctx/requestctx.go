package requestctx

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	languageKey
)

// DefaultLanguage is used when the request carries no Accept-Language.
const DefaultLanguage = "en"

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(requestIDKey).(string); ok {
		return s
	}
	return ""
}

// WithLanguage returns a context carrying the requester's language code.
// Invitation emails are rendered in this language.
func WithLanguage(ctx context.Context, lang string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, languageKey, lang)
}

// Language returns the language code from the context, falling back to
// DefaultLanguage.
func Language(ctx context.Context) string {
	if ctx != nil {
		if s, ok := ctx.Value(languageKey).(string); ok && s != "" {
			return s
		}
	}
	return DefaultLanguage
}

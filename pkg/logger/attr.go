package logger

import "log/slog"

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request correlation id under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Handler records the entity handler name under "handler".
func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

// Action records the dispatched config action (submit, delete, ...) under "action".
func Action(name string) slog.Attr {
	return slog.String("action", name)
}

// Table records a table config key under "table".
func Table(key string) slog.Attr {
	return slog.String("table", key)
}

// Template records a template name under "template".
func Template(name string) slog.Attr {
	return slog.String("template", name)
}

// Language records a language code under "lang".
func Language(code string) slog.Attr {
	return slog.String("lang", code)
}

// Status records an HTTP status code under "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Event records an event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

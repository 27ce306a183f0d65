package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/viewer"
	"github.com/peoplekit/teamcal/pkg/constants"
)

var ErrNoViewer = errors.New("no viewer found in context")

// WithLogger returns a new context carrying the request-scoped log entry.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, entry)
}

// TryUseLogger fetches the request logger if middleware installed one. Logging
// is best effort on every engine path, so there is no panicking variant.
func TryUseLogger(ctx context.Context) (*logrus.Entry, bool) {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	return logger, ok
}

// WithViewer returns a new context carrying the authenticated viewer.
func WithViewer(ctx context.Context, v viewer.Viewer) context.Context {
	return context.WithValue(ctx, constants.ViewerKey, v)
}

// UseViewer returns the viewer from the context. Calendar reads are
// meaningless without one, so absence is an error, not a default.
func UseViewer(ctx context.Context) (viewer.Viewer, error) {
	v, ok := ctx.Value(constants.ViewerKey).(viewer.Viewer)
	if !ok || v.IsZero() {
		return viewer.Viewer{}, ErrNoViewer
	}
	return v, nil
}

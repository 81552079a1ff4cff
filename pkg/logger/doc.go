// Package logger builds slog loggers with functional options and provides
// attribute helpers that keep key names consistent across packages.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "crudkit"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id := middleware.GetReqID(ctx)
//			return logger.RequestID(id), id != ""
//		}),
//	)
//	log.InfoContext(ctx, "saved", logger.Handler("users"), logger.Action("submit"))
package logger

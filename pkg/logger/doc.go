// Package logger builds *slog.Logger instances for the service and provides
// attribute helpers that keep key names consistent across packages.
//
// New assembles a JSON or text handler from functional options and wraps it
// in a decorator that pulls attributes (such as the request id) out of the
// context on every record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "saasbilling"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "subscription upserted",
//		logger.UserID(userID),
//		logger.SubscriptionID(sub.ID),
//	)
package logger

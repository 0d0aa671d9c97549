// Package logger builds log/slog loggers with environment presets and
// request-scoped attributes.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "record appended", logger.RuleSet("student"), logger.Sequence(3))
//
// Development uses the text handler at debug level; staging and production
// use JSON at info level. Context extractors run on every record, so values
// stored in the request context (request id, language) are attached without
// threading them through call sites.
package logger

/*
Package tracing provides lightweight request tracing.

# Overview

Every inbound HTTP request or gRPC call gets a span. Trace and span IDs are
ULIDs from the shared id package and are propagated with the X-Trace-ID and
X-Span-ID headers (x-trace-id / x-span-id gRPC metadata). Spans are logged
through zap once finished; IDs are also attached to the request context so
component loggers pick them up via logging.Logger.Ctx.

# Usage

	tracer := tracing.New("bridge", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	server := grpc.NewServer(
		grpc.UnaryInterceptor(tracing.GRPCUnaryInterceptor(tracer)),
	)
*/
package tracing

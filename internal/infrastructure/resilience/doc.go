/*
Package resilience provides a circuit breaker for host facilities that can
fail or stall, such as filesystem statistics.

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                            |
	                                        [failure]
	                                            v
	                                           Open

Usage:

	breaker := resilience.New("disk_usage", resilience.Settings{
		Timeout:     10 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailures(3),
	})

	usage, err := resilience.Call(ctx, breaker, func(ctx context.Context) (*disk.UsageStat, error) {
		return disk.UsageWithContext(ctx, "/data")
	})

Errors wrapping context.Canceled are not counted as failures unless
Settings.IsFailure says otherwise.
*/
package resilience

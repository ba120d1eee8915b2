/*
Package task runs functions on their own goroutine and hands back a future.

A Future exposes the outcome of the function once it has finished: its
result, or the fault it returned or panicked with. Asking for the outcome of
a task that is still running returns ErrStillRunning instead of blocking;
Join blocks until the task ends or the given context is done.

	f := task.Go(ctx, func(ctx context.Context) (int, error) {
		return expensive(ctx)
	}, task.WithName("expensive"))

	v, err := f.Join(ctx)

JoinAll waits for a group of futures, and Stream turns futures into a stream
so their outcomes can be consumed with the stream combinators, failed tasks
arriving as faults.
*/
package task

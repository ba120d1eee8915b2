/*
Package scheduling provides task execution primitives.

  - task: Start a function on its own goroutine and collect its outcome later

Task:

	f := task.Go(ctx, fetch, task.WithName("fetch"))
	v, err := f.Join(ctx)

	// or consume several outcomes lazily, in start order
	results, err := task.Stream(f1, f2, f3).ToSlice(ctx)

A task that panics completes with a *stream.PanicError fault.
*/
package scheduling

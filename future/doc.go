/*
Package future provides the asynchronous composition primitive used by the
stateless session core.

Every session operation and every persister contract returns a *Future[T].
The body of a future runs in its own goroutine; composition is expressed as
ordinary sequential Go code that awaits collaborator futures, with deferred
blocks standing in for "run regardless of outcome" completion handlers.

	f := future.New(ctx, func(ctx context.Context) (int, error) {
	    defer cleanup() // runs on success and failure alike
	    n, err := collaborator(ctx).Get(ctx)
	    if err != nil {
	        return 0, err
	    }
	    return n + 1, nil
	})
	result := f.AwaitUninterruptible()

Completed and Failed construct futures that resolve without suspension, used
on decision paths that never touch storage.
*/
package future

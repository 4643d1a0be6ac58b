package lockfile

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Take acquires an advisory lock by exclusively creating path,
// retrying once a second until the context is done. waiting, when
// set, is invoked each time the lock is found held. The returned
// closer releases the lock.
func Take(ctx context.Context, path string, waiting func()) (func(), error) {
	tk := time.NewTicker(time.Second)
	defer tk.Stop()

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()

			return func() {
				os.Remove(path)
			}, nil
		}

		if waiting != nil {
			waiting()
		}

		select {
		case <-tk.C:
			// retry
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

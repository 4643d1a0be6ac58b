package ops

import (
	"context"
	"fmt"
)

type UI struct {
}

func (u *UI) FetchManifest(src string) {
	fmt.Printf("Fetching %s\n", src)
}

func (u *UI) Resolved(name, requested, version string) {
	fmt.Printf("Resolved %s%s -> %s\n", name, requested, version)
}

func (u *UI) LockWaiting() {
	fmt.Printf("Lock detected, waiting...\n")
}

func (u *UI) DepAdded(line string) {
	fmt.Printf("Added %s\n", line)
}

func (u *UI) DepRemoved(name string) {
	fmt.Printf("Removed %s\n", name)
}

type uiMarker struct{}

func GetUI(ctx context.Context) *UI {
	v := ctx.Value(uiMarker{})
	if v == nil {
		return &UI{}
	}

	return v.(*UI)
}

package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	pb "github.com/schollz/progressbar/v3"
)

type pbVal struct {
	w io.Writer
}

type pbKey struct{}

// Open enables progress reporting for operations run under the
// returned context, rendering to w.
func Open(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, pbKey{}, pbVal{w})
}

type Progress struct {
	bar    *pb.ProgressBar
	prefix string
}

func (t *Progress) Tick() {
	if t.bar == nil {
		return
	}

	t.bar.Add(1)
}

func (t *Progress) On(step string) {
	if t.bar == nil {
		return
	}

	t.bar.Describe(t.prefix + ": " + step)
}

func (t *Progress) Close() {
	if t.bar == nil {
		return
	}

	t.bar.Close()
}

// Count creates a bar over total steps. Without Open on the context
// it returns an inert Progress, so callers never need to branch.
func Count(ctx context.Context, total int64, desc string) *Progress {
	h := ctx.Value(pbKey{})
	if h == nil {
		return &Progress{}
	}

	val := h.(pbVal)

	bar := pb.NewOptions64(
		total,
		pb.OptionSetDescription(desc),
		pb.OptionSetWriter(val.w),
		pb.OptionSetWidth(20),
		pb.OptionThrottle(65*time.Millisecond),
		pb.OptionShowCount(),
		pb.OptionSetTheme(
			pb.Theme{Saucer: "=", SaucerPadding: " ", BarStart: "[", BarEnd: "]"},
		),
		pb.OptionOnCompletion(func() {
			fmt.Fprint(val.w, "\n")
		}),
		pb.OptionFullWidth(),
	)
	bar.RenderBlank()

	return &Progress{prefix: desc, bar: bar}
}

package state

import (
	"log/slog"
	"time"

	fsutil "github.com/kk-code-lab/mdir/internal/fs"
	"github.com/kk-code-lab/mdir/internal/logging"
)

const (
	DirectoryPlaceholder  = "(Directory)"
	UnreadablePlaceholder = "(Binary or unreadable file)"

	DefaultPreviewDebounce = 100 * time.Millisecond
	DefaultPreviewCap      = 1000
)

// RefresherOptions configures a Refresher. Zero values fall back to defaults.
type RefresherOptions struct {
	Debounce time.Duration
	// Cap is the maximum number of characters read from a file.
	Cap    int
	Now    func() time.Time
	Read   func(path string, maxRunes int) (string, error)
	Detect func(path string) string
	Logger *slog.Logger
}

// Refresher recomputes the preview of the selected entry, at most once per
// debounce interval.
type Refresher struct {
	debounce time.Duration
	cap      int
	now      func() time.Time
	read     func(string, int) (string, error)
	detect   func(string) string
	logger   *slog.Logger
}

func NewRefresher(opts RefresherOptions) *Refresher {
	r := &Refresher{
		debounce: opts.Debounce,
		cap:      opts.Cap,
		now:      opts.Now,
		read:     opts.Read,
		detect:   opts.Detect,
		logger:   opts.Logger,
	}
	if r.debounce <= 0 {
		r.debounce = DefaultPreviewDebounce
	}
	if r.cap <= 0 {
		r.cap = DefaultPreviewCap
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.read == nil {
		r.read = fsutil.ReadTextPrefix
	}
	if r.detect == nil {
		r.detect = fsutil.DetectType
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	return r
}

// Refresh updates st.Preview when the debounce interval has elapsed since the
// last refresh. It reports whether the preview was recomputed. Read failures
// become a placeholder; nothing is returned to the caller.
func (r *Refresher) Refresh(st *AppState) bool {
	now := r.now()
	if !st.LastPreview.IsZero() && now.Sub(st.LastPreview) <= r.debounce {
		return false
	}
	st.LastPreview = now

	entry, ok := st.SelectedEntry()
	if !ok {
		st.Preview, st.PreviewPath, st.PreviewType = "", "", ""
		return true
	}

	st.PreviewPath = entry.Path
	if entry.IsDir {
		st.Preview = DirectoryPlaceholder
		st.PreviewType = "inode/directory"
		return true
	}

	text, err := r.read(entry.Path, r.cap)
	if err != nil {
		r.logger.Debug("preview unavailable", "path", entry.Path, "err", err)
		st.Preview = UnreadablePlaceholder
		st.PreviewType = ""
		return true
	}
	st.Preview = text
	st.PreviewType = r.detect(entry.Path)
	return true
}

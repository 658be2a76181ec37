package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotsim/config"
	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/robot"
)

// watchDebounce coalesces the burst of events an editor produces for one save.
const watchDebounce = 200 * time.Millisecond

// ValidateAction loads and builds a robot description, reporting the first problem found.
// With --watch it keeps validating every time the description is written.
func ValidateAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := loggerFrom(c)

	report := func() error {
		if err := validateDescription(c.Context, cfg, logger); err != nil {
			return err
		}
		printf(c.App.Writer, "%s: ok", cfg.Description)
		return nil
	}
	revalidate := func() {
		if err := report(); err != nil {
			printf(c.App.Writer, "%s: %v", cfg.Description, err)
		}
	}

	if !c.Bool(flagWatch) {
		return report()
	}

	watcher, err := newFileWatcher(cfg.Description)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	revalidate()
	printf(c.App.Writer, "watching %s, press Ctrl-C to stop", cfg.Description)
	return watchLoop(ctx, watcher, cfg.Description, logger, revalidate)
}

func validateDescription(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	r, err := robot.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	model := r.Model()
	logger.Infow("description ok",
		"path", cfg.Description,
		"robot", model.Name(),
		"links", len(model.Links()),
		"joints", len(model.Joints()),
		"wheels", len(model.Wheels()))
	return r.Close()
}

// newFileWatcher watches the directory holding path, since editors often replace a file
// instead of writing it in place.
func newFileWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create file watcher")
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		//nolint:errcheck
		watcher.Close()
		return nil, errors.Wrapf(err, "cannot watch %s", path)
	}
	return watcher, nil
}

// watchLoop calls onChange once a burst of writes or creates of path has settled, until ctx is
// done. onChange always runs on the caller's goroutine.
func watchLoop(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	path string,
	logger logging.Logger,
	onChange func(),
) error {
	target := filepath.Clean(path)
	settled := make(chan struct{}, 1)
	debounced := debounce.New(watchDebounce)
	signalSettled := func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-settled:
			onChange()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debugw("description changed", "path", event.Name, "op", event.Op.String())
			debounced(signalSettled)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		}
	}
}

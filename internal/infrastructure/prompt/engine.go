package prompt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/pkg/safego"
)

// overrideFile is the on-disk persona override format.
type overrideFile struct {
	Personas map[string]string `yaml:"personas"`
}

// Engine resolves the system prompt for a conversation. Defaults are
// compiled in; a YAML file can override any persona and is hot-reloaded
// when watching is enabled.
type Engine struct {
	mu        sync.RWMutex
	overrides map[valueobject.ConversationType]string
	path      string
	watcher   *fsnotify.Watcher
	logger    *zap.Logger
}

// NewEngine creates a prompt engine. path may be empty (defaults only).
func NewEngine(path string, logger *zap.Logger) *Engine {
	e := &Engine{
		overrides: make(map[valueobject.ConversationType]string),
		path:      path,
		logger:    logger.With(zap.String("component", "prompt-engine")),
	}

	if path != "" {
		if err := e.load(); err != nil {
			e.logger.Warn("Persona override file not loaded, using defaults",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
	return e
}

// SystemPrompt returns the persona instruction for a conversation type,
// with the agent-context block appended for coaching conversations that
// have a profile.
func (e *Engine) SystemPrompt(convType valueobject.ConversationType, profile *entity.BehavioralProfile) string {
	e.mu.RLock()
	base, ok := e.overrides[convType]
	e.mu.RUnlock()

	if !ok {
		base = defaultPersonas[convType]
	}
	if base == "" {
		base = defaultPersonas[valueobject.TypeGeneral]
	}

	if convType == valueobject.TypeCoaching && profile != nil {
		base += buildProfileSection(profile)
	}
	return base
}

// load reads the override file and replaces the in-memory override set.
func (e *Engine) load() error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("read persona file: %w", err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse persona file: %w", err)
	}

	overrides := make(map[valueobject.ConversationType]string, len(file.Personas))
	for name, text := range file.Personas {
		convType, ok := valueobject.ParseConversationType(name)
		if !ok {
			e.logger.Warn("Unknown persona in override file, skipping",
				zap.String("persona", name),
			)
			continue
		}
		overrides[convType] = text
	}

	e.mu.Lock()
	e.overrides = overrides
	e.mu.Unlock()

	e.logger.Info("Persona overrides loaded",
		zap.String("path", e.path),
		zap.Int("count", len(overrides)),
	)
	return nil
}

// StartWatching reloads the override file whenever it changes on disk.
// No-op when no path is configured.
func (e *Engine) StartWatching(ctx context.Context) error {
	if e.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	e.watcher = watcher

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(e.path)); err != nil {
		return fmt.Errorf("failed to watch persona dir: %w", err)
	}

	safego.Go(e.logger, "persona-watcher", func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				e.handleWatchEvent(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				e.logger.Error("Watcher error", zap.Error(err))
			}
		}
	})

	e.logger.Info("Persona hot-reload watching started",
		zap.String("path", e.path),
	)
	return nil
}

func (e *Engine) handleWatchEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(e.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	e.logger.Info("Persona file changed, reloading")
	if err := e.load(); err != nil {
		e.logger.Error("Failed to reload personas", zap.Error(err))
	}
}

// Close stops the watcher.
func (e *Engine) Close() error {
	if e.watcher != nil {
		return e.watcher.Close()
	}
	return nil
}

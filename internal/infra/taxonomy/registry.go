// Package taxonomy loads taxonomy definitions from configuration and serves
// them as immutable, versioned snapshots with atomic reload.
package taxonomy

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"kindred/config"
	"kindred/internal/domain/matching"
	"kindred/internal/domain/service"
	"kindred/internal/errors"
	"kindred/internal/util"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/fx"
)

// Params defines the dependencies for the registry.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Registry implements service.TaxonomySource. The active snapshot sits
// behind an atomic pointer: readers never block, and a reload either swaps
// in a fully validated snapshot or leaves the current one untouched.
type Registry struct {
	path    string // Empty means embedded defaults only.
	logger  *slog.Logger
	current atomic.Pointer[matching.Snapshot]

	// reloadMu serializes reloads so versions stay monotonic.
	reloadMu sync.Mutex
	version  int64
}

// New builds the registry and loads the initial snapshot: the configured
// taxonomy file when present, the embedded defaults otherwise. A broken file
// at startup is a hard error; there is no previous version to fall back to.
func New(params Params) (service.TaxonomySource, error) {
	path := ""
	if params.Config.Matching != nil {
		path = params.Config.Matching.TaxonomyPath
	}

	reg := &Registry{
		path:   path,
		logger: params.Logger,
	}

	snap, err := reg.load(1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load initial taxonomy")
	}
	reg.version = 1
	reg.current.Store(snap)

	params.Logger.Info("Taxonomy loaded",
		slog.Int64("version", snap.Version()),
		slog.String("checksum", snap.Checksum()),
		slog.Bool("embedded", path == ""),
	)

	return reg, nil
}

// Current returns the active snapshot.
func (r *Registry) Current() *matching.Snapshot {
	return r.current.Load()
}

// Reload re-reads the taxonomy source and swaps in a new snapshot. Any
// parse or validation failure is returned and the previous snapshot keeps
// serving; in-flight scoring keeps whichever snapshot it already holds.
func (r *Registry) Reload(ctx context.Context) (*matching.Snapshot, error) {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	snap, err := r.load(r.version + 1)
	if err != nil {
		r.logger.Warn("Taxonomy reload rejected, previous version keeps serving",
			slog.Int64("version", r.version),
			slog.Any("error", err),
		)

		return nil, err
	}

	r.version++
	r.current.Store(snap)

	r.logger.Info("Taxonomy reloaded",
		slog.Int64("version", snap.Version()),
		slog.String("checksum", snap.Checksum()),
	)

	return snap, nil
}

func (r *Registry) load(version int64) (*matching.Snapshot, error) {
	if r.path == "" {
		return matching.NewSnapshot(version, "", defaultDefinition())
	}

	def, err := loadDefinitionFile(r.path)
	if err != nil {
		return nil, err
	}

	checksum, err := util.CalculateFileChecksum(r.path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fingerprint taxonomy file")
	}

	return matching.NewSnapshot(version, checksum, def)
}

func loadDefinitionFile(path string) (*matching.Definition, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "failed to read taxonomy file %s", path)
	}

	def := new(matching.Definition)
	if err := k.Unmarshal("", def); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal taxonomy file %s", path)
	}

	return def, nil
}

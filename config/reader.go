package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/utils"
)

// Read reads a config from the given file. Environment variables written as $VAR or ${VAR} are
// substituted before decoding.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from. Relative
// paths in the config are resolved against that file's directory.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := Config{
		ConfigFilePath: originalPath,
	}
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if originalPath != "" {
		cfg.Description = utils.ResolveRelative(originalPath, cfg.Description)
		cfg.MeshDir = utils.ResolveRelative(originalPath, cfg.MeshDir)
	}
	if err := cfg.Ensure(); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}

	logger.Debugw("read config",
		"path", originalPath, "description", cfg.Description, "mesh_dir", cfg.MeshDir, "time_step", cfg.TimeStep)
	return &cfg, nil
}

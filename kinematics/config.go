package kinematics

import (
	"encoding/json"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/urkin/logging"
	"go.viam.com/urkin/utils"
)

// Config describes a solver: either a registered model, an explicit geometry, or a model whose geometry is
// overridden. The envelope defaults to DefaultEnvelope unless disabled.
type Config struct {
	Model           string        `json:"model,omitempty"`
	Geometry        *LinkGeometry `json:"geometry,omitempty"`
	Envelope        *Envelope     `json:"envelope_degs,omitempty"`
	DisableEnvelope bool          `json:"disable_envelope,omitempty"`
}

// Validate ensures all parts of the config are valid and returns the registered models it depends on.
func (cfg *Config) Validate(path string) ([]string, error) {
	var deps []string
	if cfg.Model == "" && cfg.Geometry == nil {
		return nil, utils.NewConfigValidationFieldRequiredError(path, "model")
	}

	var err error
	if cfg.Model != "" {
		if _, ok := LookupGeometry(cfg.Model); !ok && cfg.Geometry == nil {
			err = multierr.Append(err, utils.NewConfigValidationError(path, errors.Errorf("unknown model %q", cfg.Model)))
		}
		deps = append(deps, cfg.Model)
	}
	if cfg.Geometry != nil {
		if gErr := cfg.Geometry.Validate(fieldPath(path, "geometry")); gErr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError(path, gErr))
		}
	}
	if cfg.Envelope != nil {
		if cfg.DisableEnvelope {
			err = multierr.Append(err, utils.NewConfigValidationError(path,
				errors.New("envelope_degs cannot be set when disable_envelope is true")))
		} else if eErr := cfg.Envelope.Validate(fieldPath(path, "envelope_degs")); eErr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError(path, eErr))
		}
	}
	if err != nil {
		return nil, err
	}
	return deps, nil
}

// ResolveGeometry returns the explicit geometry if set, otherwise the one registered for the model.
func (cfg *Config) ResolveGeometry() (LinkGeometry, error) {
	if cfg.Geometry != nil {
		return *cfg.Geometry, nil
	}
	g, ok := LookupGeometry(cfg.Model)
	if !ok {
		return LinkGeometry{}, errors.Errorf("unknown model %q", cfg.Model)
	}
	return g, nil
}

// ParseConfig decodes and validates a JSON solver config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse solver config")
	}
	if _, err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFromAttributes decodes and validates a solver config from a loosely typed attribute map, such as
// one nested inside a larger robot config.
func ConfigFromAttributes(attributes interface{}) (*Config, error) {
	attrs, err := utils.AssertType[map[string]interface{}](attributes)
	if err != nil {
		return nil, err
	}
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrap(err, "failed to decode solver attributes")
	}
	if _, err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewSolverFromConfig builds a solver from a validated config.
func NewSolverFromConfig(cfg *Config, logger logging.Logger, opts ...Option) (*Solver, error) {
	if _, err := cfg.Validate(""); err != nil {
		return nil, err
	}
	geometry, err := cfg.ResolveGeometry()
	if err != nil {
		return nil, err
	}
	envelope := DefaultEnvelope()
	switch {
	case cfg.DisableEnvelope:
		envelope = nil
	case cfg.Envelope != nil:
		envelope = cfg.Envelope
	}
	if logger != nil && cfg.Model != "" {
		logger = logger.Sublogger(cfg.Model)
	}
	return NewSolver(geometry, logger, append([]Option{WithEnvelope(envelope)}, opts...)...)
}
